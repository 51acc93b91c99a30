package get_user_jobs

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

const (
	msgMissingEmail = "не указан email пользователя"
	msgJobNotFound  = "задание не найдено"
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

// HandleList GET /api/v1/booking-jobs/user/{email}
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if email == "" {
		h.logger.Warn("GET /booking-jobs/user/{email} - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.GetByUserEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("GET /booking-jobs/user/{email} - Failed to list jobs: user=%s, error=%v", email, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/booking-jobs/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			h.logger.Warn("GET /booking-jobs/{id} - Job not found: job=%s", id)
			handlers.RespondNotFound(w, msgJobNotFound)
			return
		}
		h.logger.Error("GET /booking-jobs/{id} - Failed to get job: job=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
