package trigger_processing

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
	"github.com/m04kA/SMC-BookingAgent/internal/service/scheduler"
)

const (
	msgPassInFlight = "проход обработки уже выполняется"
	msgNotRunning   = "планировщик не запущен"
)

// TriggerResponse результат ручного запуска обработки
type TriggerResponse struct {
	Message string `json:"message"`
}

// StatusResponse состояние фоновых задач планировщика
type StatusResponse struct {
	Tasks    map[string]bool `json:"tasks"`
	InFlight bool            `json:"inFlight"`
}

type Handler struct {
	scheduler Scheduler
	logger    Logger
}

func NewHandler(sched Scheduler, logger Logger) *Handler {
	return &Handler{
		scheduler: sched,
		logger:    logger,
	}
}

// HandleTrigger POST /api/v1/scheduler/trigger
func (h *Handler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.TriggerNow(r.Context()); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrPassInFlight):
			h.logger.Warn("POST /scheduler/trigger - Pass already in flight")
			handlers.RespondConflict(w, msgPassInFlight)

		case errors.Is(err, scheduler.ErrNotRunning):
			h.logger.Warn("POST /scheduler/trigger - Scheduler not running")
			handlers.RespondConflict(w, msgNotRunning)

		default:
			h.logger.Error("POST /scheduler/trigger - Processing pass failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /scheduler/trigger - Manual processing pass completed")
	handlers.RespondJSON(w, http.StatusOK, TriggerResponse{Message: "processing pass completed"})
}

// HandleStatus GET /api/v1/scheduler/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		Tasks:    h.scheduler.TaskStatus(),
		InFlight: h.scheduler.InFlight(),
	})
}
