package availability

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// Service фоновая проверка доступности аменити
// Используется только автоматической обработкой заданий, поэтому всегда ходит
// с подставной идентичностью: пользовательские проверки идут через клиент
// напрямую с IdentityReal
type Service struct {
	client SlotLister
	log    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(client SlotLister, log Logger) *Service {
	return &Service{
		client: client,
		log:    log,
	}
}

// IsAvailable проверяет, есть ли на дату хотя бы один слот с вместимостью
// Недоступность платформы — транзиентная ситуация: логируется и трактуется
// как "недоступно", а не пробрасывается наверх
func (s *Service) IsAvailable(ctx context.Context, amenityID string, date types.DateString, unitNumber string) (bool, error) {
	slots, err := s.client.GetTimeSlots(ctx, amenityID, date, domain.DefaultPartySize, unitNumber, domain.IdentityPlaceholder)
	if err != nil {
		if errors.Is(err, respage.ErrUpstreamUnavailable) {
			s.log.Warn("IsAvailable: upstream unavailable for amenity=%s date=%s: %v", amenityID, date, err)
			return false, nil
		}
		return false, err
	}

	s.log.Debug("IsAvailable: amenity=%s date=%s slots=%d", amenityID, date, len(slots))
	return len(slots) > 0, nil
}
