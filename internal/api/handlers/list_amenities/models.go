package list_amenities

import "github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"

// AmenityResponse представление аменити во внешнем API
type AmenityResponse struct {
	ID                  string                   `json:"id"`
	Name                string                   `json:"name"`
	SchedulingIncrement int                      `json:"schedulingIncrement"`
	AvailableHours      []AvailableHoursResponse `json:"availableHours"`
	MaxPartySize        int                      `json:"maxPartySize"`
	MaxCapacity         int                      `json:"maxCapacity"`
	Timezone            string                   `json:"timezone"`
	PerDayLimit         int                      `json:"perDayLimit"`
	PerWeekLimit        int                      `json:"perWeekLimit"`
	TermsOfUse          string                   `json:"termsOfUse"`
	TermsRequired       bool                     `json:"termsRequired"`
	Image               *string                  `json:"image,omitempty"`
	WaitlistEnabled     bool                     `json:"waitlistEnabled"`
	DisabledDates       []DisabledRangeResponse  `json:"disabledDates"`
}

// AvailableHoursResponse окно доступности в конкретный день недели
type AvailableHoursResponse struct {
	Day       int    `json:"day"`
	StartHour string `json:"startHour"`
	EndHour   string `json:"endHour"`
}

// DisabledRangeResponse период недоступности аменити
type DisabledRangeResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FromAmenity конвертирует модель интеграции в ответ API
func FromAmenity(a *respage.Amenity) *AmenityResponse {
	resp := &AmenityResponse{
		ID:                  a.ID,
		Name:                a.Name,
		SchedulingIncrement: a.SchedulingIncrement,
		AvailableHours:      make([]AvailableHoursResponse, 0, len(a.AvailableHours)),
		MaxPartySize:        a.MaxPartySize,
		MaxCapacity:         a.MaxCapacity,
		Timezone:            a.Timezone,
		PerDayLimit:         a.PerDayLimit,
		PerWeekLimit:        a.PerWeekLimit,
		TermsOfUse:          a.TermsOfUse,
		TermsRequired:       a.TermsRequired,
		Image:               a.Image,
		WaitlistEnabled:     a.WaitlistEnabled,
		DisabledDates:       make([]DisabledRangeResponse, 0, len(a.DisabledDates)),
	}

	for _, hours := range a.AvailableHours {
		resp.AvailableHours = append(resp.AvailableHours, AvailableHoursResponse{
			Day:       hours.Day,
			StartHour: hours.StartHour,
			EndHour:   hours.EndHour,
		})
	}
	for _, disabled := range a.DisabledDates {
		resp.DisabledDates = append(resp.DisabledDates, DisabledRangeResponse{
			StartDate: disabled.StartDate,
			EndDate:   disabled.EndDate,
		})
	}

	return resp
}
