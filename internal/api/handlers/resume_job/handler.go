package resume_job

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

const (
	msgJobNotFound = "задание не найдено"
	msgJobTerminal = "задание в терминальном статусе и не может быть возобновлено"
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

// Handle POST /api/v1/booking-jobs/{id}/resume
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.Resume(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("POST /booking-jobs/{id}/resume - Job not found: job=%s", id)
			handlers.RespondNotFound(w, msgJobNotFound)

		case errors.Is(err, jobs.ErrJobTerminal):
			h.logger.Warn("POST /booking-jobs/{id}/resume - Job is terminal: job=%s", id)
			handlers.RespondConflict(w, msgJobTerminal)

		default:
			h.logger.Error("POST /booking-jobs/{id}/resume - Failed to resume job: job=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-jobs/{id}/resume - Job resumed: job=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
