package get_availability

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

// Handle GET /api/v1/amenities/{id}/availability?date=YYYY-MM-DD&unitNumber=...&partySize=N
// Пользовательская проверка: идет с реальным номером квартиры
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	amenityID := mux.Vars(r)["id"]

	date := types.DateString(r.URL.Query().Get("date"))
	if err := date.Validate(); err != nil {
		h.logger.Warn("GET /amenities/{id}/availability - Invalid date: amenity=%s, error=%v", amenityID, err)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	unitNumber := r.URL.Query().Get("unitNumber")
	if unitNumber == "" {
		h.logger.Warn("GET /amenities/{id}/availability - Missing unitNumber: amenity=%s", amenityID)
		handlers.RespondBadRequest(w, msgMissingUnitNumber)
		return
	}

	partySize := domain.DefaultPartySize
	if raw := r.URL.Query().Get("partySize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			partySize = parsed
		}
	}

	info, err := h.client.GetAvailabilityInfo(r.Context(), amenityID, date, partySize, unitNumber, domain.IdentityReal)
	if err != nil {
		switch {
		case errors.Is(err, respage.ErrAmenityNotFound):
			h.logger.Warn("GET /amenities/{id}/availability - Amenity not found: amenity=%s", amenityID)
			handlers.RespondNotFound(w, msgAmenityNotFound)

		case errors.Is(err, respage.ErrUpstreamUnavailable):
			h.logger.Warn("GET /amenities/{id}/availability - Upstream unavailable: amenity=%s, error=%v", amenityID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /amenities/{id}/availability - Failed: amenity=%s, error=%v", amenityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromAvailabilityInfo(info))
}
