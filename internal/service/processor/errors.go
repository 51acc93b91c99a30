package processor

import "errors"

var (
	ErrMissingOneTimeFields   = errors.New("one-time job is missing target date or time")
	ErrMissingRecurringFields = errors.New("recurring job is missing frequency or preferred time")
	ErrReservationFailed      = errors.New("reservation attempt failed")
	ErrResidentLookup         = errors.New("failed to resolve resident")
	ErrAmenityLookup          = errors.New("failed to load amenity")
	ErrAvailabilityCheck      = errors.New("failed to check availability")
)
