package scheduler

import "context"

// JobProcessor интерфейс обработчика заданий, запускаемого по расписанию
type JobProcessor interface {
	ProcessEligible(ctx context.Context) error
}

// Metrics интерфейс сборщика метрик планировщика
type Metrics interface {
	IncSchedulerPass(trigger string)
}

// NopMetrics сборщик-заглушка для режима с выключенными метриками
type NopMetrics struct{}

// IncSchedulerPass ничего не делает
func (NopMetrics) IncSchedulerPass(string) {}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
