package respage

import (
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// Amenity модель аменити из ResPage API (read-only, не персистится)
type Amenity struct {
	ID                  string           `json:"_id"`
	Name                string           `json:"name"`
	SchedulingIncrement int              `json:"scheduling_increment"`
	AvailableHours      []AvailableHours `json:"available_hours"`
	MaxPartySize        int              `json:"max_party_size"`
	MaxCapacity         int              `json:"max_capacity"`
	Timezone            string           `json:"timezone"`
	PerDayLimit         int              `json:"per_day_limit"`
	PerWeekLimit        int              `json:"per_week_limit"`
	TermsOfUse          string           `json:"terms_of_use"`
	TermsRequired       bool             `json:"terms_of_use_agreement_required"`
	Image               *string          `json:"image,omitempty"`
	WaitlistEnabled     bool             `json:"waitlist_enabled"`
	DisabledDates       []DisabledRange  `json:"disabled_dates"`
}

// AvailableHours окно доступности аменити в конкретный день недели
type AvailableHours struct {
	Day       int    `json:"day"` // 0-6, Sunday-Saturday
	StartHour string `json:"start_hour"`
	EndHour   string `json:"end_hour"`
}

// DisabledRange период, в который аменити недоступно
type DisabledRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TimeSlot слот времени с доступной вместимостью
type TimeSlot struct {
	Timeslot          string `json:"timeslot"` // метка начала слота, как отдает upstream
	AvailableCapacity int    `json:"available_capacity"`
}

// AvailabilityInfo агрегированная информация о доступности на дату
type AvailabilityInfo struct {
	HasAvailableSlots bool
	HasWaitlist       bool
	TimeSlots         []TimeSlot
}

// ReservationRequest запрос на бронирование слота
type ReservationRequest struct {
	AmenityID  string
	Email      string
	LastName   string
	UnitNumber string
	TargetDate types.DateString
	TargetTime types.TimeString
	PartySize  int
}

// ReservationResult структурированный исход попытки бронирования
// Сетевые и платформенные ошибки сворачиваются в ErrorMessage, не пробрасываются
type ReservationResult struct {
	Success       bool
	ReservationID string
	AccessCode    string
	ErrorMessage  string
}

// Модели ответов ResPage API (все ответы приходят в конверте {data: ...})

type amenitiesEnvelope struct {
	Data []Amenity `json:"data"`
}

type residentEnvelope struct {
	Data string `json:"data"`
}

type blacklistEnvelope struct {
	Data bool `json:"data"`
}

type timeSlotsEnvelope struct {
	Data struct {
		AvailableTimeSlots []TimeSlot `json:"availableTimeSlots"`
	} `json:"data"`
}

type reservationEnvelope struct {
	Data struct {
		ID         string `json:"_id"`
		AccessCode string `json:"access_code"`
	} `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// reservationPayload тело POST /reservations
type reservationPayload struct {
	Data     reservationData `json:"data"`
	Timezone string          `json:"timezone"`
}

type reservationData struct {
	Reservation reservationFields `json:"reservation"`
	Agreement   agreementFields   `json:"agreement"`
}

type reservationFields struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	PartySize  int    `json:"party_size"`
	ResourceID string `json:"resource_id"`
	ResidentID string `json:"resident_id"`
	UnitNumber string `json:"unit_number"`
	Email      string `json:"email"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Source     string `json:"source"`
}

type agreementFields struct {
	AgreementText string `json:"agreement_text"`
	AgreementType string `json:"agreement_type"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}
