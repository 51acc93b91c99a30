package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// BookingType represents the kind of booking intent
type BookingType string

const (
	TypeOneTime   BookingType = "one_time"
	TypeRecurring BookingType = "recurring"
)

// JobStatus represents the lifecycle state of a booking job
type JobStatus string

const (
	StatusActive    JobStatus = "active"
	StatusPaused    JobStatus = "paused"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// RecurrenceFrequency represents how often a recurring job books
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
	FrequencyAlways  RecurrenceFrequency = "always"
)

// RequestIdentity selects which credentials are attached to upstream requests.
// Placeholder substitutes a decoy unit number so background polling cannot be
// traced back to the resident; Real is reserved for user-initiated checks,
// resident verification and the final reservation call.
type RequestIdentity string

const (
	IdentityReal        RequestIdentity = "real"
	IdentityPlaceholder RequestIdentity = "placeholder"
)

// BookingJob is a resident's standing booking intent, driven by the processor
// until it reaches a terminal state
type BookingJob struct {
	ID string

	// Real resident credentials, used only for authoritative upstream calls
	UserEmail      string
	UserLastName   string
	UserUnitNumber string

	AmenityID   string
	AmenityName string

	BookingType BookingType
	Status      JobStatus

	// One-time fields
	TargetDate *time.Time
	TargetTime types.TimeString

	// Recurring fields
	RecurrenceFrequency RecurrenceFrequency
	PreferredTime       types.TimeString
	PreferredDaysOfWeek []int // 0-6, Sunday-Saturday
	EndDate             *time.Time

	PartySize int

	SuccessfulBookings int
	FailedAttempts     int

	LastAttempt           *time.Time
	LastSuccessfulBooking *time.Time
	ErrorMessage          *string

	// Processing gate independent of Status; pause/resume toggles both
	IsActive bool

	BookedSlots []BookedSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEligible returns true if the job may be picked up by a processing pass
func (j *BookingJob) IsEligible() bool {
	return j.Status == StatusActive && j.IsActive
}

// IsTerminal returns true if no transition ever leaves the current status
func (j *BookingJob) IsTerminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// HasSlotFor reports whether a slot for the given date and time is already secured.
// (date, time) is the de-duplication key that prevents re-booking.
func (j *BookingJob) HasSlotFor(date types.DateString, t types.TimeString) bool {
	for _, slot := range j.BookedSlots {
		if slot.BookedDate == date && slot.BookedTime == t {
			return true
		}
	}
	return false
}

// MarkCompleted transitions the job to the COMPLETED terminal state
func (j *BookingJob) MarkCompleted() {
	j.Status = StatusCompleted
	j.IsActive = false
}

// MarkFailed transitions the job to the FAILED terminal state
func (j *BookingJob) MarkFailed() {
	j.Status = StatusFailed
	j.IsActive = false
}

// RecordSuccess appends a secured slot and updates success bookkeeping
func (j *BookingJob) RecordSuccess(slot BookedSlot, now time.Time) {
	j.SuccessfulBookings++
	j.LastSuccessfulBooking = &now
	j.ErrorMessage = nil
	j.BookedSlots = append(j.BookedSlots, slot)
}

// BookedSlot is a confirmed reservation produced by a successful attempt
type BookedSlot struct {
	ID            string
	JobID         string
	ReservationID string
	AccessCode    string
	BookedDate    types.DateString
	BookedTime    types.TimeString
	CreatedAt     time.Time
}
