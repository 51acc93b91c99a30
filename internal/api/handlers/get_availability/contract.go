package get_availability

import (
	"context"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// AmenityClient интерфейс клиента платформы бронирования
type AmenityClient interface {
	GetAvailabilityInfo(
		ctx context.Context,
		amenityID string,
		date types.DateString,
		partySize int,
		unitNumber string,
		identity domain.RequestIdentity,
	) (*respage.AvailabilityInfo, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
