package respage

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Clock интерфейс для получения текущего времени (для тестирования кэша)
type Clock interface {
	Now() time.Time
}

// realClock реальные часы для production
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
