package get_user_jobs

import (
	"context"

	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

// JobService интерфейс сервиса заданий бронирования
type JobService interface {
	GetByUserEmail(ctx context.Context, email string) ([]*jobs.JobResponse, error)
	GetByID(ctx context.Context, id string) (*jobs.JobResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
