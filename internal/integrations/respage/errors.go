package respage

import "errors"

var (
	// ErrUpstreamUnavailable возвращается, когда ResPage API недоступен или вернул ошибку
	// Транзиентная ошибка: проверка доступности трактует её как "недоступно"
	ErrUpstreamUnavailable = errors.New("respage client: upstream unavailable")

	// ErrAmenityNotFound возвращается, когда аменити с указанным ID не существует
	ErrAmenityNotFound = errors.New("respage client: amenity not found")

	// ErrResidentNotVerified возвращается, когда платформа не нашла резидента
	// по фамилии и номеру квартиры
	ErrResidentNotVerified = errors.New("respage client: resident not verified")

	// ErrInvalidResponse возвращается при некорректном ответе от платформы
	ErrInvalidResponse = errors.New("respage client: invalid response")
)

// Сообщения структурированных исходов бронирования
const (
	msgBlacklisted     = "User is blacklisted for this amenity"
	msgNoSlotAvailable = "No available time slots found for the requested date and time"
)
