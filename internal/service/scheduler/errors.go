package scheduler

import "errors"

var (
	// ErrPassInFlight возвращается ручным запуском, если проход уже идет
	ErrPassInFlight = errors.New("processing pass already in flight")
	// ErrNotRunning возвращается, если планировщик не запущен
	ErrNotRunning = errors.New("scheduler is not running")
)
