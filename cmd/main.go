package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createJobHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/create_job"
	deleteJobHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/delete_job"
	getAvailabilityHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/get_availability"
	getTimeSlotsHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/get_time_slots"
	getUserJobsHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/get_user_jobs"
	healthHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/health"
	listAmenitiesHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/list_amenities"
	pauseJobHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/pause_job"
	resumeJobHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/resume_job"
	triggerHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/trigger_processing"
	updateJobHandler "github.com/m04kA/SMC-BookingAgent/internal/api/handlers/update_job"
	"github.com/m04kA/SMC-BookingAgent/internal/api/middleware"
	"github.com/m04kA/SMC-BookingAgent/internal/config"
	jobRepo "github.com/m04kA/SMC-BookingAgent/internal/infra/storage/bookingjob"
	respageClient "github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	availabilityService "github.com/m04kA/SMC-BookingAgent/internal/service/availability"
	jobsService "github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
	processorService "github.com/m04kA/SMC-BookingAgent/internal/service/processor"
	schedulerService "github.com/m04kA/SMC-BookingAgent/internal/service/scheduler"
	"github.com/m04kA/SMC-BookingAgent/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingAgent/pkg/logger"
	"github.com/m04kA/SMC-BookingAgent/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingAgent...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент ResPage
	respage, err := respageClient.NewClient(respageClient.Config{
		BaseURL:               cfg.ResPage.BaseURL,
		CampaignID:            cfg.ResPage.CampaignID,
		Timeout:               time.Duration(cfg.ResPage.TimeoutSeconds) * time.Second,
		Timezone:              cfg.ResPage.Timezone,
		PlaceholderEmail:      cfg.ResPage.PlaceholderEmail,
		PlaceholderUnitNumber: cfg.ResPage.PlaceholderUnitNumber,
		PlaceholderLastName:   cfg.ResPage.PlaceholderLastName,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize ResPage client: %v", err)
	}
	log.Info("ResPage client initialized (url=%s, campaign=%s, timezone=%s)",
		cfg.ResPage.BaseURL, cfg.ResPage.CampaignID, cfg.ResPage.Timezone)

	// Инициализируем репозиторий (с метриками или без)
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.WrapPlain(db)
	}
	jobRepository := jobRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(respage, log)
	jobsSvc := jobsService.NewService(jobRepository, log)

	var processorMetrics processorService.Metrics = processorService.NopMetrics{}
	var schedulerMetrics schedulerService.Metrics = schedulerService.NopMetrics{}
	if cfg.Metrics.Enabled {
		processorMetrics = metricsCollector
		schedulerMetrics = metricsCollector
	}

	processor := processorService.NewProcessor(
		jobRepository,
		respage,
		availabilitySvc,
		&processorService.RealTimeProvider{},
		processorMetrics,
		log,
	)

	sched := schedulerService.New(
		processor,
		time.Duration(cfg.Scheduler.IntervalMinutes)*time.Minute,
		time.Duration(cfg.Scheduler.HealthIntervalMinutes)*time.Minute,
		schedulerMetrics,
		log,
	)

	// Инициализируем handlers
	createJob := createJobHandler.NewHandler(jobsSvc, log)
	getUserJobs := getUserJobsHandler.NewHandler(jobsSvc, log)
	updateJob := updateJobHandler.NewHandler(jobsSvc, log)
	deleteJob := deleteJobHandler.NewHandler(jobsSvc, log)
	pauseJob := pauseJobHandler.NewHandler(jobsSvc, log)
	resumeJob := resumeJobHandler.NewHandler(jobsSvc, log)
	listAmenities := listAmenitiesHandler.NewHandler(respage, log)
	getAvailability := getAvailabilityHandler.NewHandler(respage, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(respage, log)
	trigger := triggerHandler.NewHandler(sched, log)
	healthCheck := healthHandler.NewHandler(db, sched)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health endpoint
	r.HandleFunc("/health", healthCheck.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Задания бронирования ---
	api.HandleFunc("/booking-jobs", createJob.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-jobs/user/{email}", getUserJobs.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/booking-jobs/{id}", getUserJobs.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/booking-jobs/{id}", updateJob.Handle).Methods(http.MethodPut)
	api.HandleFunc("/booking-jobs/{id}", deleteJob.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/booking-jobs/{id}/pause", pauseJob.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-jobs/{id}/resume", resumeJob.Handle).Methods(http.MethodPost)

	// --- Забронированные слоты ---
	api.HandleFunc("/booked-slots/{slotId}", deleteJob.HandleSlot).Methods(http.MethodDelete)

	// --- Аменити (проксирование ResPage) ---
	api.HandleFunc("/amenities", listAmenities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/amenities/{id}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/amenities/{id}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// --- Планировщик ---
	api.HandleFunc("/scheduler/trigger", trigger.HandleTrigger).Methods(http.MethodPost)
	api.HandleFunc("/scheduler/status", trigger.HandleStatus).Methods(http.MethodGet)

	// Запускаем планировщик
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()
	sched.Start(schedCtx)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем планировщик: дожидаемся конца идущего прохода
	sched.Stop()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
