package domain

import "time"

// Processing thresholds
const (
	// MaxFailedAttempts is the circuit breaker: a job reaching this many hard
	// faults is permanently disabled from automatic processing
	MaxFailedAttempts = 10

	DefaultPartySize = 1
	MinPartySize     = 1
)

// Recurrence horizons (in days) per frequency
const (
	AlwaysHorizonDays = 7
	WeeklyHorizonDays = 28
)

// ReservationDuration is the fixed booking window length the upstream platform expects
const ReservationDuration = time.Hour

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых задание ещё может обрабатываться
var ActiveStatuses = []JobStatus{
	StatusActive,
	StatusPaused,
}

// TerminalStatuses список терминальных статусов задания
var TerminalStatuses = []JobStatus{
	StatusCompleted,
	StatusFailed,
}
