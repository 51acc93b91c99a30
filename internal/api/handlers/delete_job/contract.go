package delete_job

import "context"

// JobService интерфейс сервиса заданий бронирования
type JobService interface {
	Delete(ctx context.Context, id string) error
	DeleteSlot(ctx context.Context, slotID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
