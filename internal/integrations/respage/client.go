package respage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// Config настройки клиента ResPage
type Config struct {
	BaseURL    string
	CampaignID string
	Timeout    time.Duration
	Timezone   string

	// Подставные данные для фоновых проверок: реальный номер квартиры
	// не должен попадать в трекинг платформы при опросе доступности
	PlaceholderEmail      string
	PlaceholderUnitNumber string
	PlaceholderLastName   string
}

// Client клиент публичного ResPage API
//
// Стратегия минимизации запросов и защиты приватности:
// - список аменити кэшируется на 5 минут
// - фоновые проверки доступности ходят с подставным номером квартиры (IdentityPlaceholder)
// - реальные данные используются только для верификации резидента, проверки
//   блэклиста и финального бронирования (IdentityReal)
type Client struct {
	baseURL    string
	campaignID string
	httpClient *http.Client
	log        Logger
	clock      Clock
	location   *time.Location

	placeholderEmail string
	placeholderUnit  string

	cache amenityCache
}

// NewClient создает новый экземпляр клиента ResPage
func NewClient(cfg Config, log Logger) (*Client, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timezone %q: %v", ErrInvalidResponse, cfg.Timezone, err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		campaignID: cfg.CampaignID,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:              log,
		clock:            realClock{},
		location:         location,
		placeholderEmail: cfg.PlaceholderEmail,
		placeholderUnit:  cfg.PlaceholderUnitNumber,
	}, nil
}

// WithClock подменяет часы клиента (для тестирования кэша)
func (c *Client) WithClock(clock Clock) *Client {
	c.clock = clock
	return c
}

// ListAmenities возвращает список аменити кампании
// Результат кэшируется на 5 минут; попадание в кэш не порождает сетевой вызов
func (c *Client) ListAmenities(ctx context.Context) ([]Amenity, error) {
	now := c.clock.Now()

	if cached, ok := c.cache.get(now); ok {
		c.log.Debug("ListAmenities: returning %d amenities from cache", len(cached))
		return cached, nil
	}

	query := url.Values{}
	query.Set("campaign_id", c.campaignID)

	var envelope amenitiesEnvelope
	if err := c.getJSON(ctx, "/reservation-resources", query, &envelope); err != nil {
		return nil, fmt.Errorf("%w: ListAmenities: %v", ErrUpstreamUnavailable, err)
	}

	c.cache.put(envelope.Data, now)
	c.log.Info("ListAmenities: fetched %d amenities from API", len(envelope.Data))

	return envelope.Data, nil
}

// GetAmenity возвращает аменити по ID из закэшированного списка
func (c *Client) GetAmenity(ctx context.Context, amenityID string) (*Amenity, error) {
	amenities, err := c.ListAmenities(ctx)
	if err != nil {
		return nil, err
	}

	for i := range amenities {
		if amenities[i].ID == amenityID {
			return &amenities[i], nil
		}
	}

	return nil, fmt.Errorf("%w: id=%s", ErrAmenityNotFound, amenityID)
}

// ResolveResidentID находит ID резидента по фамилии и номеру квартиры
// Всегда использует реальные данные: это авторитетный вызов
func (c *Client) ResolveResidentID(ctx context.Context, lastName, unitNumber string) (string, error) {
	query := url.Values{}
	query.Set("campaign_id", c.campaignID)
	query.Set("last_name", lastName)
	query.Set("unit_number", unitNumber)

	var envelope residentEnvelope
	if err := c.getJSON(ctx, "/residents/name-unit-match", query, &envelope); err != nil {
		return "", fmt.Errorf("%w: ResolveResidentID: %v", ErrUpstreamUnavailable, err)
	}

	if envelope.Data == "" {
		c.log.Warn("ResolveResidentID: no match for last_name=%s unit=%s", lastName, unitNumber)
		return "", ErrResidentNotVerified
	}

	return envelope.Data, nil
}

// IsBlacklisted проверяет, заблокирован ли пользователь для аменити
// Проверка привязана к пользователю, поэтому всегда идет с реальным email
func (c *Client) IsBlacklisted(ctx context.Context, email, amenityID string) (bool, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("resource_id", amenityID)

	var envelope blacklistEnvelope
	if err := c.getJSON(ctx, "/reservation-resources/blacklist", query, &envelope); err != nil {
		return false, fmt.Errorf("%w: IsBlacklisted: %v", ErrUpstreamUnavailable, err)
	}

	if envelope.Data {
		c.log.Warn("IsBlacklisted: %s is blacklisted for amenity %s", email, amenityID)
	}

	return envelope.Data, nil
}

// GetTimeSlots возвращает слоты с доступной вместимостью на дату
// identity управляет тем, какой номер квартиры попадает в запрос
func (c *Client) GetTimeSlots(
	ctx context.Context,
	amenityID string,
	date types.DateString,
	partySize int,
	unitNumber string,
	identity domain.RequestIdentity,
) ([]TimeSlot, error) {
	all, err := c.fetchTimeSlots(ctx, amenityID, date, partySize, unitNumber, identity)
	if err != nil {
		return nil, err
	}

	available := make([]TimeSlot, 0, len(all))
	for _, slot := range all {
		if slot.AvailableCapacity > 0 {
			available = append(available, slot)
		}
	}

	return available, nil
}

// GetAvailabilityInfo возвращает слоты и признак доступности waitlist
// Waitlist доступен только если он включен у аменити, свободных слотов нет,
// но хотя бы один слот на эту дату определен (отличает "все занято" от
// "площадка в этот день не работает")
func (c *Client) GetAvailabilityInfo(
	ctx context.Context,
	amenityID string,
	date types.DateString,
	partySize int,
	unitNumber string,
	identity domain.RequestIdentity,
) (*AvailabilityInfo, error) {
	all, err := c.fetchTimeSlots(ctx, amenityID, date, partySize, unitNumber, identity)
	if err != nil {
		return nil, err
	}

	available := 0
	for _, slot := range all {
		if slot.AvailableCapacity > 0 {
			available++
		}
	}

	amenity, err := c.GetAmenity(ctx, amenityID)
	if err != nil {
		return nil, err
	}

	return &AvailabilityInfo{
		HasAvailableSlots: available > 0,
		HasWaitlist:       amenity.WaitlistEnabled && available == 0 && len(all) > 0,
		TimeSlots:         all,
	}, nil
}

// Reserve выполняет бронирование слота
// Любая ошибка сворачивается в ReservationResult: вызывающий всегда получает
// структурированный исход, а не транспортную ошибку
func (c *Client) Reserve(ctx context.Context, req ReservationRequest, residentID, termsOfUse string) *ReservationResult {
	// 1. Проверка блэклиста — никогда не пропускается
	blacklisted, err := c.IsBlacklisted(ctx, req.Email, req.AmenityID)
	if err != nil {
		c.log.Error("Reserve: blacklist check failed for %s: %v", req.Email, err)
		return &ReservationResult{Success: false, ErrorMessage: err.Error()}
	}
	if blacklisted {
		return &ReservationResult{Success: false, ErrorMessage: msgBlacklisted}
	}

	// 2. Слоты на целевую дату — финальная проверка идет с реальными данными
	slots, err := c.GetTimeSlots(ctx, req.AmenityID, req.TargetDate, req.PartySize, req.UnitNumber, domain.IdentityReal)
	if err != nil {
		c.log.Error("Reserve: time slot fetch failed for amenity %s on %s: %v", req.AmenityID, req.TargetDate, err)
		return &ReservationResult{Success: false, ErrorMessage: err.Error()}
	}

	// 3. Ближайший к запрошенному времени слот
	target, err := targetDateTime(req.TargetDate, req.TargetTime)
	if err != nil {
		return &ReservationResult{Success: false, ErrorMessage: err.Error()}
	}

	slot := findBestTimeSlot(slots, target)
	if slot == nil {
		return &ReservationResult{Success: false, ErrorMessage: msgNoSlotAvailable}
	}

	// 4. Часовое окно бронирования в таймзоне площадки
	startTime, err := parseSlotTime(slot.Timeslot)
	if err != nil {
		c.log.Error("Reserve: failed to parse slot time %q: %v", slot.Timeslot, err)
		return &ReservationResult{Success: false, ErrorMessage: err.Error()}
	}
	endTime := startTime.Add(domain.ReservationDuration)

	payload := reservationPayload{
		Data: reservationData{
			Reservation: reservationFields{
				CampaignID: c.campaignID,
				Name:       req.LastName,
				PartySize:  req.PartySize,
				ResourceID: req.AmenityID,
				ResidentID: residentID,
				UnitNumber: req.UnitNumber,
				Email:      req.Email,
				StartTime:  startTime.In(c.location).Format("2006-01-02T15:04:05"),
				EndTime:    endTime.In(c.location).Format("2006-01-02T15:04:05"),
				Source:     "amenity_booking_widget",
			},
			Agreement: agreementFields{
				AgreementText: termsOfUse,
				AgreementType: "explicit",
				AgreedToTerms: true,
			},
		},
		Timezone: c.location.String(),
	}

	var envelope reservationEnvelope
	if err := c.postJSON(ctx, "/reservations", payload, &envelope); err != nil {
		c.log.Error("Reserve: reservation request failed for %s: %v", req.Email, err)
		return &ReservationResult{Success: false, ErrorMessage: err.Error()}
	}

	c.log.Info("Reserve: created reservation %s for %s", envelope.Data.ID, req.Email)

	return &ReservationResult{
		Success:       true,
		ReservationID: envelope.Data.ID,
		AccessCode:    envelope.Data.AccessCode,
	}
}

// fetchTimeSlots загружает все слоты на дату без фильтрации по вместимости
func (c *Client) fetchTimeSlots(
	ctx context.Context,
	amenityID string,
	date types.DateString,
	partySize int,
	unitNumber string,
	identity domain.RequestIdentity,
) ([]TimeSlot, error) {
	unit := c.placeholderUnit
	if identity == domain.IdentityReal {
		unit = unitNumber
	}

	query := url.Values{}
	query.Set("date", date.String())
	query.Set("party_size", fmt.Sprintf("%d", partySize))
	query.Set("unit_number", unit)

	path := fmt.Sprintf("/reservation-resources/%s/time-slots", amenityID)

	var envelope timeSlotsEnvelope
	if err := c.getJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("%w: fetchTimeSlots amenity=%s date=%s: %v", ErrUpstreamUnavailable, amenityID, date, err)
	}

	return envelope.Data.AvailableTimeSlots, nil
}

// findBestTimeSlot выбирает слот, ближайший по модулю к запрошенному времени
// При равном расстоянии побеждает более ранний слот (upstream отдает слоты по возрастанию)
func findBestTimeSlot(slots []TimeSlot, target time.Time) *TimeSlot {
	var best *TimeSlot
	var bestDistance time.Duration

	for i := range slots {
		slotTime, err := parseSlotTime(slots[i].Timeslot)
		if err != nil {
			continue
		}

		distance := slotTime.Sub(target)
		if distance < 0 {
			distance = -distance
		}

		if best == nil || distance < bestDistance {
			best = &slots[i]
			bestDistance = distance
		}
	}

	return best
}

// parseSlotTime парсит метку начала слота из ответа upstream
func parseSlotTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timeslot %q", ErrInvalidResponse, raw)
}

// targetDateTime собирает целевую метку времени из даты и времени задания
func targetDateTime(date types.DateString, t types.TimeString) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02T15:04", fmt.Sprintf("%sT%s", date, t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid target date/time %s %s", ErrInvalidResponse, date, t)
	}
	return parsed, nil
}

// getJSON выполняет GET запрос и декодирует конверт ответа
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	c.setHeaders(req)

	return c.do(req, out)
}

// postJSON выполняет POST запрос с JSON телом и декодирует конверт ответа
func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	c.setHeaders(req)

	return c.do(req, out)
}

// do выполняет запрос, проверяет статус и декодирует ответ
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)

		// Платформа кладет детали ошибки в {error: "..."}
		var envelope errorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, envelope.Error)
		}
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	return nil
}

// setHeaders выставляет заголовки, которые ожидает публичный виджет ResPage
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Origin", "https://rp-webchat-client.netlify.app")
	req.Header.Set("Referer", "https://rp-webchat-client.netlify.app/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36")
}
