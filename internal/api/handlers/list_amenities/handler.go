package list_amenities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
)

const msgUpstreamUnavailable = "платформа бронирования недоступна"

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

// Handle GET /api/v1/amenities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.client.ListAmenities(r.Context())
	if err != nil {
		if errors.Is(err, respage.ErrUpstreamUnavailable) {
			h.logger.Warn("GET /amenities - Upstream unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)
			return
		}
		h.logger.Error("GET /amenities - Failed to list amenities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	result := make([]*AmenityResponse, 0, len(amenities))
	for i := range amenities {
		result = append(result, FromAmenity(&amenities[i]))
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
