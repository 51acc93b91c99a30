package get_availability

import "github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"

// AvailabilityResponse ответ проверки доступности аменити на дату
type AvailabilityResponse struct {
	HasAvailableSlots bool               `json:"hasAvailableSlots"`
	HasWaitlist       bool               `json:"hasWaitlist"`
	TimeSlots         []TimeSlotResponse `json:"timeSlots"`
}

// TimeSlotResponse слот времени с доступной вместимостью
type TimeSlotResponse struct {
	Timeslot          string `json:"timeslot"`
	AvailableCapacity int    `json:"availableCapacity"`
}

// FromAvailabilityInfo конвертирует модель интеграции в ответ API
func FromAvailabilityInfo(info *respage.AvailabilityInfo) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		HasAvailableSlots: info.HasAvailableSlots,
		HasWaitlist:       info.HasWaitlist,
		TimeSlots:         make([]TimeSlotResponse, 0, len(info.TimeSlots)),
	}
	for _, slot := range info.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, TimeSlotResponse{
			Timeslot:          slot.Timeslot,
			AvailableCapacity: slot.AvailableCapacity,
		})
	}
	return resp
}
