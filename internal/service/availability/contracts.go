package availability

import (
	"context"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// SlotLister интерфейс клиента платформы для получения слотов
type SlotLister interface {
	GetTimeSlots(
		ctx context.Context,
		amenityID string,
		date types.DateString,
		partySize int,
		unitNumber string,
		identity domain.RequestIdentity,
	) ([]respage.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
