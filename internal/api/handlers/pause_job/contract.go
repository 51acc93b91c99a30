package pause_job

import (
	"context"

	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

// JobService интерфейс сервиса заданий бронирования
type JobService interface {
	Pause(ctx context.Context, id string) (*jobs.JobResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
