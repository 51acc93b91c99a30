package scheduler

import (
	"context"
	"sync"
	"time"
)

// Имена фоновых задач, отдаваемые в статусе планировщика
const (
	TaskProcessor   = "booking-processor"
	TaskHealthCheck = "health-check"
)

// Триггеры прохода (значения метрики scheduler_passes_total)
const (
	TriggerTimer  = "timer"
	TriggerManual = "manual"
)

// Scheduler периодически запускает обработку заданий и health-проверку.
// Одновременно идет не более одного прохода: тикер и ручной запуск,
// пришедшие во время прохода, пропускаются
type Scheduler struct {
	processor      JobProcessor
	interval       time.Duration
	healthInterval time.Duration
	metrics        Metrics
	log            Logger

	passMu  sync.Mutex // держится на время прохода
	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New создает новый планировщик с интервалами из конфигурации
func New(processor JobProcessor, interval, healthInterval time.Duration, metrics Metrics, log Logger) *Scheduler {
	return &Scheduler{
		processor:      processor,
		interval:       interval,
		healthInterval: healthInterval,
		metrics:        metrics,
		log:            log,
	}
}

// Start запускает фоновые циклы. Первый проход выполняется сразу,
// не дожидаясь первого тика
func (s *Scheduler) Start(ctx context.Context) {
	s.stateMu.Lock()
	if s.running {
		s.stateMu.Unlock()
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.stateMu.Unlock()

	s.log.Info("Start: scheduler started, processing every %s, health check every %s", s.interval, s.healthInterval)

	s.wg.Add(2)
	go s.processingLoop(ctx)
	go s.healthLoop(ctx)
}

// Stop останавливает циклы и дожидается завершения идущего прохода
func (s *Scheduler) Stop() {
	s.stateMu.Lock()
	if !s.running {
		s.stateMu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.stateMu.Unlock()

	s.wg.Wait()
	s.log.Info("Stop: scheduler stopped")
}

// TriggerNow запускает внеочередной проход обработки.
// Если проход уже идет, возвращает ErrPassInFlight
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	s.stateMu.Lock()
	running := s.running
	s.stateMu.Unlock()
	if !running {
		return ErrNotRunning
	}

	if !s.passMu.TryLock() {
		return ErrPassInFlight
	}
	defer s.passMu.Unlock()

	s.log.Info("TriggerNow: manual processing pass requested")
	s.metrics.IncSchedulerPass(TriggerManual)
	if err := s.processor.ProcessEligible(ctx); err != nil {
		s.log.Error("TriggerNow: processing pass failed: %v", err)
		return err
	}
	return nil
}

// TaskStatus возвращает состояние фоновых задач
func (s *Scheduler) TaskStatus() map[string]bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return map[string]bool{
		TaskProcessor:   s.running,
		TaskHealthCheck: s.running,
	}
}

// InFlight сообщает, идет ли проход обработки прямо сейчас
func (s *Scheduler) InFlight() bool {
	if s.passMu.TryLock() {
		s.passMu.Unlock()
		return false
	}
	return true
}

func (s *Scheduler) processingLoop(ctx context.Context) {
	defer s.wg.Done()

	s.runPass(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPass(ctx)
		}
	}
}

func (s *Scheduler) runPass(ctx context.Context) {
	if !s.passMu.TryLock() {
		s.log.Warn("runPass: previous pass still in flight, skipping tick")
		return
	}
	defer s.passMu.Unlock()

	s.metrics.IncSchedulerPass(TriggerTimer)
	if err := s.processor.ProcessEligible(ctx); err != nil {
		s.log.Error("runPass: processing pass failed: %v", err)
	}
}

func (s *Scheduler) healthLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.log.Info("healthLoop: scheduler alive, tasks=%v", s.TaskStatus())
		}
	}
}
