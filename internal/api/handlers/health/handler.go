package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/api/handlers"
)

// Pinger интерфейс проверки соединения с базой данных
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SchedulerStatus интерфейс состояния планировщика
type SchedulerStatus interface {
	TaskStatus() map[string]bool
}

// HealthResponse ответ health-проверки сервиса
type HealthResponse struct {
	Status    string          `json:"status"`
	Database  string          `json:"database"`
	Tasks     map[string]bool `json:"tasks"`
	Timestamp time.Time       `json:"timestamp"`
}

type Handler struct {
	db        Pinger
	scheduler SchedulerStatus
}

func NewHandler(db Pinger, scheduler SchedulerStatus) *Handler {
	return &Handler{
		db:        db,
		scheduler: scheduler,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Tasks:     h.scheduler.TaskStatus(),
		Timestamp: time.Now().UTC(),
	}

	status := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, status, resp)
}
