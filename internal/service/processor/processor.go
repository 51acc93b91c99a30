package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/internal/service/recurrence"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// Результаты обработки одного задания (значения метрики jobs_processed_total)
const (
	OutcomeBooked    = "booked"
	OutcomeCompleted = "completed"
	OutcomeNoop      = "noop"
	OutcomeFailed    = "failed"
)

// Processor реализует машину состояний заданий бронирования.
// Process — чистая функция над копией задания: все побочные эффекты (сеть)
// идут через интерфейсы, персистентность остается на вызывающем
type Processor struct {
	repo         JobRepository
	client       BookingClient
	availability AvailabilityChecker
	timeProvider TimeProvider
	metrics      Metrics
	log          Logger
}

// NewProcessor создает новый экземпляр процессора заданий
func NewProcessor(
	repo JobRepository,
	client BookingClient,
	availability AvailabilityChecker,
	timeProvider TimeProvider,
	metrics Metrics,
	log Logger,
) *Processor {
	return &Processor{
		repo:         repo,
		client:       client,
		availability: availability,
		timeProvider: timeProvider,
		metrics:      metrics,
		log:          log,
	}
}

// ProcessEligible обрабатывает все активные задания последовательно.
// Ошибка одного задания не прерывает проход: она учитывается в счетчике
// неудач самого задания и проход продолжается
func (p *Processor) ProcessEligible(ctx context.Context) error {
	jobs, err := p.repo.ListActiveEligible(ctx)
	if err != nil {
		return fmt.Errorf("ProcessEligible - list jobs: %w", err)
	}

	p.log.Info("ProcessEligible: picked up %d eligible jobs", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p.processJob(ctx, job)
	}

	return nil
}

// processJob прогоняет одно задание через машину состояний и сохраняет итог.
// Жесткая ошибка увеличивает счетчик неудач; на десятой подряд задание
// переводится в FAILED и больше не обрабатывается
func (p *Processor) processJob(ctx context.Context, job *domain.BookingJob) {
	before := *job

	updated, err := p.Process(ctx, *job)
	*job = updated

	outcome := OutcomeNoop
	switch {
	case err != nil:
		job.FailedAttempts++
		msg := err.Error()
		job.ErrorMessage = &msg
		if job.FailedAttempts >= domain.MaxFailedAttempts {
			job.MarkFailed()
			p.log.Error("processJob: job=%s reached %d failed attempts, marking FAILED", job.ID, job.FailedAttempts)
		} else {
			p.log.Warn("processJob: job=%s attempt failed (%d/%d): %v", job.ID, job.FailedAttempts, domain.MaxFailedAttempts, err)
		}
		outcome = OutcomeFailed

	case job.SuccessfulBookings > before.SuccessfulBookings:
		outcome = OutcomeBooked

	case job.IsTerminal() && !before.IsTerminal():
		outcome = OutcomeCompleted
	}

	p.metrics.IncJobProcessed(outcome)

	if saveErr := p.repo.Save(ctx, job); saveErr != nil {
		p.log.Error("processJob: job=%s save failed: %v", job.ID, saveErr)
	}
}

// Process выполняет один шаг машины состояний для задания.
// Возвращает обновленную копию задания; ошибка означает жесткий сбой попытки,
// учет которого (счетчик неудач, перевод в FAILED) делает вызывающий
func (p *Processor) Process(ctx context.Context, job domain.BookingJob) (domain.BookingJob, error) {
	now := p.timeProvider.Now()
	job.LastAttempt = &now

	if !job.IsEligible() {
		return job, nil
	}

	switch job.BookingType {
	case domain.TypeOneTime:
		return p.processOneTime(ctx, job, now)
	case domain.TypeRecurring:
		return p.processRecurring(ctx, job, now)
	default:
		return job, fmt.Errorf("unknown booking type %q", job.BookingType)
	}
}

// processOneTime — путь одноразового задания: одна целевая дата, после
// успешного бронирования задание завершается
func (p *Processor) processOneTime(ctx context.Context, job domain.BookingJob, now time.Time) (domain.BookingJob, error) {
	if job.TargetDate == nil || job.TargetTime == "" {
		return job, ErrMissingOneTimeFields
	}

	targetDate := types.NewDateString(*job.TargetDate)

	// Идемпотентность: слот уже забронирован — завершаемся без сети
	if job.HasSlotFor(targetDate, job.TargetTime) {
		p.log.Info("processOneTime: job=%s already holds slot for %s %s, completing", job.ID, targetDate, job.TargetTime)
		job.MarkCompleted()
		return job, nil
	}

	// Целевая дата прошла — бронировать больше нечего
	if beforeToday(*job.TargetDate, now) {
		p.log.Warn("processOneTime: job=%s target date %s has passed, completing without booking", job.ID, targetDate)
		msg := fmt.Sprintf("target date %s has passed", targetDate)
		job.ErrorMessage = &msg
		job.MarkCompleted()
		return job, nil
	}

	available, err := p.availability.IsAvailable(ctx, job.AmenityID, targetDate, job.UserUnitNumber)
	if err != nil {
		return job, fmt.Errorf("%w: %v", ErrAvailabilityCheck, err)
	}
	if !available {
		p.log.Debug("processOneTime: job=%s no capacity on %s, will retry next pass", job.ID, targetDate)
		return job, nil
	}

	slot, err := p.reserve(ctx, &job, targetDate, job.TargetTime)
	if err != nil {
		return job, err
	}

	job.RecordSuccess(*slot, now)
	job.MarkCompleted()
	p.log.Info("processOneTime: job=%s booked %s %s, reservation=%s", job.ID, targetDate, job.TargetTime, slot.ReservationID)
	return job, nil
}

// processRecurring — путь повторяющегося задания: перебор дат-кандидатов,
// успех фиксируется, но задание остается активным до EndDate
func (p *Processor) processRecurring(ctx context.Context, job domain.BookingJob, now time.Time) (domain.BookingJob, error) {
	if job.RecurrenceFrequency == "" || job.PreferredTime == "" {
		return job, ErrMissingRecurringFields
	}

	if job.EndDate != nil && beforeToday(*job.EndDate, now) {
		p.log.Info("processRecurring: job=%s end date passed, completing", job.ID)
		job.MarkCompleted()
		return job, nil
	}

	candidates := recurrence.NextCandidateDates(&job, now)
	if len(candidates) == 0 {
		p.log.Debug("processRecurring: job=%s no candidate dates in horizon", job.ID)
		return job, nil
	}

	for _, candidate := range candidates {
		if job.EndDate != nil && candidate.After(*job.EndDate) {
			break
		}

		date := types.NewDateString(candidate)

		if job.HasSlotFor(date, job.PreferredTime) {
			continue
		}

		available, err := p.availability.IsAvailable(ctx, job.AmenityID, date, job.UserUnitNumber)
		if err != nil {
			return job, fmt.Errorf("%w: %v", ErrAvailabilityCheck, err)
		}
		if !available {
			continue
		}

		slot, err := p.reserve(ctx, &job, date, job.PreferredTime)
		if err != nil {
			// Сорвавшаяся попытка на одной дате не хоронит весь проход:
			// запоминаем ошибку и пробуем следующего кандидата
			msg := err.Error()
			job.ErrorMessage = &msg
			p.log.Warn("processRecurring: job=%s date=%s reservation failed: %v", job.ID, date, err)
			continue
		}

		job.RecordSuccess(*slot, now)
		p.log.Info("processRecurring: job=%s booked %s %s, reservation=%s", job.ID, date, job.PreferredTime, slot.ReservationID)
		break
	}

	return job, nil
}

// reserve выполняет авторитетную часть попытки: условия аменити, резолв
// резидента по реальным данным и сам запрос бронирования
func (p *Processor) reserve(ctx context.Context, job *domain.BookingJob, date types.DateString, t types.TimeString) (*domain.BookedSlot, error) {
	amenity, err := p.client.GetAmenity(ctx, job.AmenityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAmenityLookup, err)
	}

	residentID, err := p.client.ResolveResidentID(ctx, job.UserLastName, job.UserUnitNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResidentLookup, err)
	}

	partySize := job.PartySize
	if partySize <= 0 {
		partySize = domain.DefaultPartySize
	}

	result := p.client.Reserve(ctx, respage.ReservationRequest{
		AmenityID:  job.AmenityID,
		Email:      job.UserEmail,
		LastName:   job.UserLastName,
		UnitNumber: job.UserUnitNumber,
		TargetDate: date,
		TargetTime: t,
		PartySize:  partySize,
	}, residentID, amenity.TermsOfUse)

	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrReservationFailed, result.ErrorMessage)
	}

	return &domain.BookedSlot{
		JobID:         job.ID,
		ReservationID: result.ReservationID,
		AccessCode:    result.AccessCode,
		BookedDate:    date,
		BookedTime:    t,
	}, nil
}

// beforeToday сравнивает только календарные даты, без учета времени суток
func beforeToday(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).
		Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}
