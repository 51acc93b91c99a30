package list_amenities

import (
	"context"

	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
)

// AmenityClient интерфейс клиента платформы бронирования
type AmenityClient interface {
	ListAmenities(ctx context.Context) ([]respage.Amenity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
