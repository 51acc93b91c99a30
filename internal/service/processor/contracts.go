package processor

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// JobRepository интерфейс репозитория заданий
type JobRepository interface {
	ListActiveEligible(ctx context.Context) ([]*domain.BookingJob, error)
	Save(ctx context.Context, job *domain.BookingJob) error
}

// BookingClient интерфейс клиента платформы для выполнения бронирований
type BookingClient interface {
	GetAmenity(ctx context.Context, amenityID string) (*respage.Amenity, error)
	ResolveResidentID(ctx context.Context, lastName, unitNumber string) (string, error)
	Reserve(ctx context.Context, req respage.ReservationRequest, residentID, termsOfUse string) *respage.ReservationResult
}

// AvailabilityChecker интерфейс фоновой проверки доступности
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, amenityID string, date types.DateString, unitNumber string) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Metrics интерфейс сборщика метрик обработки
type Metrics interface {
	IncJobProcessed(outcome string)
}

// NopMetrics сборщик-заглушка для режима с выключенными метриками
type NopMetrics struct{}

// IncJobProcessed ничего не делает
func (NopMetrics) IncJobProcessed(string) {}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
