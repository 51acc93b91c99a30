package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/infra/storage/bookingjob"
	"github.com/m04kA/SMC-BookingAgent/pkg/ptr"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// Service CRUD-операции над заданиями бронирования
type Service struct {
	repo JobRepository
	log  Logger
}

// NewService создает новый экземпляр сервиса заданий
func NewService(repo JobRepository, log Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create валидирует запрос и создает новое задание в статусе ACTIVE
func (s *Service) Create(ctx context.Context, req *CreateJobRequest) (*JobResponse, error) {
	job := &domain.BookingJob{
		UserEmail:      req.UserEmail,
		UserLastName:   req.UserLastName,
		UserUnitNumber: req.UserUnitNumber,
		AmenityID:      req.AmenityID,
		AmenityName:    req.AmenityName,
		BookingType:    domain.BookingType(req.BookingType),
		Status:         domain.StatusActive,
		IsActive:       true,
		PartySize:      domain.DefaultPartySize,
	}

	if req.PartySize != nil && *req.PartySize > 0 {
		job.PartySize = *req.PartySize
	}

	switch job.BookingType {
	case domain.TypeOneTime:
		if req.TargetDate == nil || req.TargetTime == nil {
			return nil, ErrMissingOneTimeData
		}
		targetDate, err := parseDate(*req.TargetDate)
		if err != nil {
			return nil, err
		}
		if err := req.TargetTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
		job.TargetDate = targetDate
		job.TargetTime = *req.TargetTime

	case domain.TypeRecurring:
		if req.RecurrenceFrequency == nil || req.PreferredTime == nil {
			return nil, ErrMissingRecurringData
		}
		freq, err := parseFrequency(*req.RecurrenceFrequency)
		if err != nil {
			return nil, err
		}
		if err := req.PreferredTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
		job.RecurrenceFrequency = freq
		job.PreferredTime = *req.PreferredTime
		job.PreferredDaysOfWeek = types.DaysToInts(req.PreferredDaysOfWeek)
		if req.EndDate != nil {
			endDate, err := parseDate(*req.EndDate)
			if err != nil {
				return nil, err
			}
			job.EndDate = endDate
		}

	default:
		return nil, ErrInvalidBookingType
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("Create - repo: %w", err)
	}

	s.log.Info("Create: job=%s type=%s amenity=%s user=%s", created.ID, created.BookingType, created.AmenityID, created.UserEmail)
	return FromDomainJob(created), nil
}

// GetByID возвращает задание по идентификатору
func (s *Service) GetByID(ctx context.Context, id string) (*JobResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return FromDomainJob(job), nil
}

// GetByUserEmail возвращает все задания пользователя, новые первыми
func (s *Service) GetByUserEmail(ctx context.Context, email string) ([]*JobResponse, error) {
	jobList, err := s.repo.GetByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("GetByUserEmail - repo: %w", err)
	}
	return FromDomainJobs(jobList), nil
}

// Update применяет частичное обновление. Задания в терминальном статусе
// не редактируются
func (s *Service) Update(ctx context.Context, id string, req *UpdateJobRequest) (*JobResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if job.IsTerminal() {
		return nil, ErrJobTerminal
	}

	fields := bookingjob.UpdateFields{
		TargetTime:    req.TargetTime,
		PreferredTime: req.PreferredTime,
	}

	if req.TargetDate != nil {
		targetDate, err := parseDate(*req.TargetDate)
		if err != nil {
			return nil, err
		}
		fields.TargetDate = targetDate
	}
	if req.TargetTime != nil {
		if err := req.TargetTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
	}
	if req.RecurrenceFrequency != nil {
		freq, err := parseFrequency(*req.RecurrenceFrequency)
		if err != nil {
			return nil, err
		}
		fields.RecurrenceFrequency = &freq
	}
	if req.PreferredTime != nil {
		if err := req.PreferredTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
	}
	if req.PreferredDaysOfWeek != nil {
		fields.PreferredDaysOfWeek = ptr.Ptr(types.DaysToInts(req.PreferredDaysOfWeek))
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		fields.EndDate = endDate
	}
	if req.PartySize != nil && *req.PartySize > 0 {
		fields.PartySize = req.PartySize
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info("Update: job=%s updated", id)
	return FromDomainJob(updated), nil
}

// Pause останавливает обработку задания
func (s *Service) Pause(ctx context.Context, id string) (*JobResponse, error) {
	return s.setProcessingState(ctx, id, domain.StatusPaused, false)
}

// Resume возобновляет обработку задания
func (s *Service) Resume(ctx context.Context, id string) (*JobResponse, error) {
	return s.setProcessingState(ctx, id, domain.StatusActive, true)
}

func (s *Service) setProcessingState(ctx context.Context, id string, status domain.JobStatus, isActive bool) (*JobResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if job.IsTerminal() {
		return nil, ErrJobTerminal
	}

	updated, err := s.repo.Update(ctx, id, bookingjob.UpdateFields{
		Status:   &status,
		IsActive: &isActive,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info("setProcessingState: job=%s status=%s active=%v", id, status, isActive)
	return FromDomainJob(updated), nil
}

// Delete удаляет задание вместе с забронированными слотами
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.log.Info("Delete: job=%s removed", id)
	return nil
}

// DeleteSlot удаляет один забронированный слот задания
func (s *Service) DeleteSlot(ctx context.Context, slotID string) error {
	if err := s.repo.DeleteSlot(ctx, slotID); err != nil {
		return mapRepoError(err)
	}
	s.log.Info("DeleteSlot: slot=%s removed", slotID)
	return nil
}

func parseDate(raw string) (*time.Time, error) {
	parsed, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return &parsed, nil
}

func parseFrequency(raw string) (domain.RecurrenceFrequency, error) {
	freq := domain.RecurrenceFrequency(raw)
	switch freq {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyAlways:
		return freq, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, raw)
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, bookingjob.ErrJobNotFound):
		return ErrJobNotFound
	case errors.Is(err, bookingjob.ErrSlotNotFound):
		return ErrSlotNotFound
	default:
		return err
	}
}
