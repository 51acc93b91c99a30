package trigger_processing

import "context"

// Scheduler интерфейс планировщика фоновой обработки
type Scheduler interface {
	TriggerNow(ctx context.Context) error
	TaskStatus() map[string]bool
	InFlight() bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
