package jobs

import "errors"

var (
	ErrJobNotFound          = errors.New("booking job not found")
	ErrSlotNotFound         = errors.New("booked slot not found")
	ErrInvalidBookingType   = errors.New("booking type must be one_time or recurring")
	ErrMissingOneTimeData   = errors.New("one-time job requires targetDate and targetTime")
	ErrMissingRecurringData = errors.New("recurring job requires recurrenceFrequency and preferredTime")
	ErrInvalidFrequency     = errors.New("invalid recurrence frequency")
	ErrInvalidDate          = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time format, expected HH:MM")
	ErrJobTerminal          = errors.New("job is in a terminal state")
)
