package jobs

import (
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// CreateJobRequest запрос на создание задания бронирования
type CreateJobRequest struct {
	UserEmail           string            `json:"userEmail"`
	UserLastName        string            `json:"userLastName"`
	UserUnitNumber      string            `json:"userUnitNumber"`
	AmenityID           string            `json:"amenityId"`
	AmenityName         string            `json:"amenityName"`
	BookingType         string            `json:"bookingType"`
	TargetDate          *string           `json:"targetDate,omitempty"`
	TargetTime          *types.TimeString `json:"targetTime,omitempty"`
	RecurrenceFrequency *string           `json:"recurrenceFrequency,omitempty"`
	PreferredTime       *types.TimeString `json:"preferredTime,omitempty"`
	PreferredDaysOfWeek []types.DayOfWeek `json:"preferredDaysOfWeek,omitempty"`
	EndDate             *string           `json:"endDate,omitempty"`
	PartySize           *int              `json:"partySize,omitempty"`
}

// UpdateJobRequest частичное обновление задания
type UpdateJobRequest struct {
	TargetDate          *string           `json:"targetDate,omitempty"`
	TargetTime          *types.TimeString `json:"targetTime,omitempty"`
	RecurrenceFrequency *string           `json:"recurrenceFrequency,omitempty"`
	PreferredTime       *types.TimeString `json:"preferredTime,omitempty"`
	PreferredDaysOfWeek []types.DayOfWeek `json:"preferredDaysOfWeek,omitempty"`
	EndDate             *string           `json:"endDate,omitempty"`
	PartySize           *int              `json:"partySize,omitempty"`
}

// JobResponse представление задания во внешнем API
type JobResponse struct {
	ID                    string               `json:"id"`
	UserEmail             string               `json:"userEmail"`
	UserLastName          string               `json:"userLastName"`
	UserUnitNumber        string               `json:"userUnitNumber"`
	AmenityID             string               `json:"amenityId"`
	AmenityName           string               `json:"amenityName"`
	BookingType           string               `json:"bookingType"`
	Status                string               `json:"status"`
	TargetDate            *string              `json:"targetDate"`
	TargetTime            *types.TimeString    `json:"targetTime"`
	RecurrenceFrequency   *string              `json:"recurrenceFrequency"`
	PreferredTime         *types.TimeString    `json:"preferredTime"`
	PreferredDaysOfWeek   []types.DayOfWeek    `json:"preferredDaysOfWeek"`
	EndDate               *string              `json:"endDate"`
	PartySize             int                  `json:"partySize"`
	SuccessfulBookings    int                  `json:"successfulBookings"`
	FailedAttempts        int                  `json:"failedAttempts"`
	LastAttempt           *time.Time           `json:"lastAttempt"`
	LastSuccessfulBooking *time.Time           `json:"lastSuccessfulBooking"`
	ErrorMessage          *string              `json:"errorMessage"`
	IsActive              bool                 `json:"isActive"`
	BookedSlots           []BookedSlotResponse `json:"bookedSlots"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// BookedSlotResponse представление забронированного слота во внешнем API
type BookedSlotResponse struct {
	ID            string           `json:"id"`
	ReservationID string           `json:"reservationId"`
	AccessCode    string           `json:"accessCode"`
	BookedDate    types.DateString `json:"bookedDate"`
	BookedTime    types.TimeString `json:"bookedTime"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// FromDomainJob конвертирует доменное задание в ответ API
func FromDomainJob(job *domain.BookingJob) *JobResponse {
	resp := &JobResponse{
		ID:                    job.ID,
		UserEmail:             job.UserEmail,
		UserLastName:          job.UserLastName,
		UserUnitNumber:        job.UserUnitNumber,
		AmenityID:             job.AmenityID,
		AmenityName:           job.AmenityName,
		BookingType:           string(job.BookingType),
		Status:                string(job.Status),
		PreferredDaysOfWeek:   types.IntsToDays(job.PreferredDaysOfWeek),
		PartySize:             job.PartySize,
		SuccessfulBookings:    job.SuccessfulBookings,
		FailedAttempts:        job.FailedAttempts,
		LastAttempt:           job.LastAttempt,
		LastSuccessfulBooking: job.LastSuccessfulBooking,
		ErrorMessage:          job.ErrorMessage,
		IsActive:              job.IsActive,
		BookedSlots:           make([]BookedSlotResponse, 0, len(job.BookedSlots)),
		CreatedAt:             job.CreatedAt,
		UpdatedAt:             job.UpdatedAt,
	}

	if job.TargetDate != nil {
		date := job.TargetDate.Format(domain.DateFormat)
		resp.TargetDate = &date
	}
	if !job.TargetTime.IsZero() {
		t := job.TargetTime
		resp.TargetTime = &t
	}
	if job.RecurrenceFrequency != "" {
		freq := string(job.RecurrenceFrequency)
		resp.RecurrenceFrequency = &freq
	}
	if !job.PreferredTime.IsZero() {
		t := job.PreferredTime
		resp.PreferredTime = &t
	}
	if job.EndDate != nil {
		date := job.EndDate.Format(domain.DateFormat)
		resp.EndDate = &date
	}

	for _, slot := range job.BookedSlots {
		resp.BookedSlots = append(resp.BookedSlots, BookedSlotResponse{
			ID:            slot.ID,
			ReservationID: slot.ReservationID,
			AccessCode:    slot.AccessCode,
			BookedDate:    slot.BookedDate,
			BookedTime:    slot.BookedTime,
			CreatedAt:     slot.CreatedAt,
		})
	}

	return resp
}

// FromDomainJobs конвертирует список доменных заданий в ответы API
func FromDomainJobs(jobList []*domain.BookingJob) []*JobResponse {
	result := make([]*JobResponse, 0, len(jobList))
	for _, job := range jobList {
		result = append(result, FromDomainJob(job))
	}
	return result
}
