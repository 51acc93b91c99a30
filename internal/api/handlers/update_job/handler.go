package update_job

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgJobNotFound        = "задание не найдено"
	msgJobTerminal        = "задание в терминальном статусе и не может быть изменено"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidFrequency   = "некорректная частота повторения"
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

// Handle PUT /api/v1/booking-jobs/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req jobs.UpdateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-jobs/{id} - Invalid request body: job=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PUT /booking-jobs/{id} - Job not found: job=%s", id)
			handlers.RespondNotFound(w, msgJobNotFound)

		case errors.Is(err, jobs.ErrJobTerminal):
			h.logger.Warn("PUT /booking-jobs/{id} - Job is terminal: job=%s", id)
			handlers.RespondConflict(w, msgJobTerminal)

		case errors.Is(err, jobs.ErrInvalidDate):
			h.logger.Warn("PUT /booking-jobs/{id} - Invalid date: job=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, jobs.ErrInvalidTime):
			h.logger.Warn("PUT /booking-jobs/{id} - Invalid time: job=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, jobs.ErrInvalidFrequency):
			h.logger.Warn("PUT /booking-jobs/{id} - Invalid frequency: job=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidFrequency)

		default:
			h.logger.Error("PUT /booking-jobs/{id} - Failed to update job: job=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-jobs/{id} - Job updated: job=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
