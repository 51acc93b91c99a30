package jobs

import (
	"context"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/infra/storage/bookingjob"
)

// JobRepository интерфейс репозитория заданий бронирования
type JobRepository interface {
	Create(ctx context.Context, job *domain.BookingJob) (*domain.BookingJob, error)
	GetByID(ctx context.Context, id string) (*domain.BookingJob, error)
	GetByUserEmail(ctx context.Context, email string) ([]*domain.BookingJob, error)
	Update(ctx context.Context, id string, fields bookingjob.UpdateFields) (*domain.BookingJob, error)
	Delete(ctx context.Context, id string) error
	DeleteSlot(ctx context.Context, slotID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
