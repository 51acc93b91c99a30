package delete_job

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

const (
	msgJobNotFound  = "задание не найдено"
	msgSlotNotFound = "забронированный слот не найден"
)

type Handler struct {
	service JobService
	logger  Logger
}

func NewHandler(service JobService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/booking-jobs/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			h.logger.Warn("DELETE /booking-jobs/{id} - Job not found: job=%s", id)
			handlers.RespondNotFound(w, msgJobNotFound)
			return
		}
		h.logger.Error("DELETE /booking-jobs/{id} - Failed to delete job: job=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /booking-jobs/{id} - Job deleted: job=%s", id)
	handlers.RespondNoContent(w)
}

// HandleSlot DELETE /api/v1/booked-slots/{slotId}
func (h *Handler) HandleSlot(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		if errors.Is(err, jobs.ErrSlotNotFound) {
			h.logger.Warn("DELETE /booked-slots/{slotId} - Slot not found: slot=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
			return
		}
		h.logger.Error("DELETE /booked-slots/{slotId} - Failed to delete slot: slot=%s, error=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /booked-slots/{slotId} - Slot deleted: slot=%s", slotID)
	handlers.RespondNoContent(w)
}
