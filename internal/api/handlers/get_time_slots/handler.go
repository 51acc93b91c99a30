package get_time_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

const (
	msgMissingDate         = "обязателен query-параметр date в формате YYYY-MM-DD"
	msgMissingUnitNumber   = "обязателен query-параметр unitNumber"
	msgAmenityNotFound     = "аменити не найдено"
	msgUpstreamUnavailable = "платформа бронирования недоступна"
)

// TimeSlotResponse слот времени с доступной вместимостью
type TimeSlotResponse struct {
	Timeslot          string `json:"timeslot"`
	AvailableCapacity int    `json:"availableCapacity"`
}

type Handler struct {
	client AmenityClient
	logger Logger
}

func NewHandler(client AmenityClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle GET /api/v1/amenities/{id}/time-slots?date=YYYY-MM-DD&unitNumber=...&partySize=N
// Пользовательский запрос: идет с реальным номером квартиры
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	amenityID := mux.Vars(r)["id"]

	date := types.DateString(r.URL.Query().Get("date"))
	if err := date.Validate(); err != nil {
		h.logger.Warn("GET /amenities/{id}/time-slots - Invalid date: amenity=%s, error=%v", amenityID, err)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	unitNumber := r.URL.Query().Get("unitNumber")
	if unitNumber == "" {
		h.logger.Warn("GET /amenities/{id}/time-slots - Missing unitNumber: amenity=%s", amenityID)
		handlers.RespondBadRequest(w, msgMissingUnitNumber)
		return
	}

	partySize := domain.DefaultPartySize
	if raw := r.URL.Query().Get("partySize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			partySize = parsed
		}
	}

	slots, err := h.client.GetTimeSlots(r.Context(), amenityID, date, partySize, unitNumber, domain.IdentityReal)
	if err != nil {
		switch {
		case errors.Is(err, respage.ErrAmenityNotFound):
			h.logger.Warn("GET /amenities/{id}/time-slots - Amenity not found: amenity=%s", amenityID)
			handlers.RespondNotFound(w, msgAmenityNotFound)

		case errors.Is(err, respage.ErrUpstreamUnavailable):
			h.logger.Warn("GET /amenities/{id}/time-slots - Upstream unavailable: amenity=%s, error=%v", amenityID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /amenities/{id}/time-slots - Failed: amenity=%s, error=%v", amenityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	result := make([]TimeSlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, TimeSlotResponse{
			Timeslot:          slot.Timeslot,
			AvailableCapacity: slot.AvailableCapacity,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
