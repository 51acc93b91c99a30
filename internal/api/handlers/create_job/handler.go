package create_job

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingType = "некорректный тип бронирования, ожидается one_time или recurring"
	msgMissingOneTime     = "для one_time задания обязательны targetDate и targetTime"
	msgMissingRecurring   = "для recurring задания обязательны recurrenceFrequency и preferredTime"
	msgInvalidFrequency   = "некорректная частота повторения"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
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

// Handle POST /api/v1/booking-jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req jobs.CreateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-jobs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrInvalidBookingType):
			h.logger.Warn("POST /booking-jobs - Invalid booking type: %q", req.BookingType)
			handlers.RespondBadRequest(w, msgInvalidBookingType)

		case errors.Is(err, jobs.ErrMissingOneTimeData):
			h.logger.Warn("POST /booking-jobs - Missing one-time fields: user=%s", req.UserEmail)
			handlers.RespondBadRequest(w, msgMissingOneTime)

		case errors.Is(err, jobs.ErrMissingRecurringData):
			h.logger.Warn("POST /booking-jobs - Missing recurring fields: user=%s", req.UserEmail)
			handlers.RespondBadRequest(w, msgMissingRecurring)

		case errors.Is(err, jobs.ErrInvalidFrequency):
			h.logger.Warn("POST /booking-jobs - Invalid frequency: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrequency)

		case errors.Is(err, jobs.ErrInvalidDate):
			h.logger.Warn("POST /booking-jobs - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, jobs.ErrInvalidTime):
			h.logger.Warn("POST /booking-jobs - Invalid time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("POST /booking-jobs - Failed to create job: user=%s, error=%v", req.UserEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-jobs - Job created: job=%s, user=%s, amenity=%s", result.ID, result.UserEmail, result.AmenityID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
