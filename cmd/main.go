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
	"github.com/redis/go-redis/v9"

	assignMasterHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/assign_master"
	cancelAppointmentHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/create_appointment"
	editAppointmentHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/edit_appointment"
	getAppointmentHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/get_client_appointments"
	getMasterAppointmentsHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/get_master_appointments"
	updateStatusHandler "github.com/elegantstudio/ES-SchedulingService/internal/api/handlers/update_status"
	"github.com/elegantstudio/ES-SchedulingService/internal/api/middleware"
	"github.com/elegantstudio/ES-SchedulingService/internal/config"
	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/infra/cache"
	appointmentRepo "github.com/elegantstudio/ES-SchedulingService/internal/infra/storage/appointment"
	catalogServiceClient "github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	masterDirectoryClient "github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
	appointmentsService "github.com/elegantstudio/ES-SchedulingService/internal/service/appointments"
	assignMasterUC "github.com/elegantstudio/ES-SchedulingService/internal/usecase/assign_master"
	createAppointmentUC "github.com/elegantstudio/ES-SchedulingService/internal/usecase/create_appointment"
	editAppointmentUC "github.com/elegantstudio/ES-SchedulingService/internal/usecase/edit_appointment"
	getAvailableSlotsUC "github.com/elegantstudio/ES-SchedulingService/internal/usecase/get_available_slots"
	"github.com/elegantstudio/ES-SchedulingService/pkg/dbmetrics"
	"github.com/elegantstudio/ES-SchedulingService/pkg/logger"
	"github.com/elegantstudio/ES-SchedulingService/pkg/metrics"
	"github.com/elegantstudio/ES-SchedulingService/pkg/simpletxmanager"
	"github.com/elegantstudio/ES-SchedulingService/pkg/txmanager"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
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

	log.Info("Starting ES-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочее окно студии - fallback, когда у мастера нет своего расписания
	studioWindow, err := studioWindowFromConfig(cfg.Studio)
	if err != nil {
		log.Fatal("Invalid studio working window: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	directoryClient := masterDirectoryClient.NewClient(
		cfg.MasterDirectory.URL,
		time.Duration(cfg.MasterDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, MasterDirectory=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.MasterDirectory.URL, cfg.MasterDirectory.Timeout)

	// Кеш слотов (опционально)
	var slotCache getAvailableSlotsUC.SlotCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		slotCache = cache.NewSlotCache(
			redisClient,
			time.Duration(cfg.Redis.SlotCacheTTLSeconds)*time.Second,
		)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotCacheTTLSeconds)
	}

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)

	// Инициализируем use cases
	timeProvider := &createAppointmentUC.RealTimeProvider{}

	assignMasterUseCase := assignMasterUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		directoryClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		directoryClient,
		assignMasterUseCase,
		txMgr,
		studioWindow,
		timeProvider,
		log,
	)

	editAppointmentUseCase := editAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		directoryClient,
		txMgr,
		studioWindow,
		&editAppointmentUC.RealTimeProvider{},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		directoryClient,
		slotCache,
		studioWindow,
		cfg.Studio.SlotGranularityMinutes,
		&getAvailableSlotsUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	editAppointment := editAppointmentHandler.NewHandler(editAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	assignMaster := assignMasterHandler.NewHandler(assignMasterUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getMasterAppointments := getMasterAppointmentsHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request ID для трассировки
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты мастера на дату
	api.HandleFunc("/masters/{masterId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Автоподбор мастера на слот
	api.HandleFunc("/masters/assign",
		assignMaster.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Редактирование записи (перенос, смена мастера или услуги)
	protected.HandleFunc("/appointments/{appointmentId}", editAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (для мастеров)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Дневной лист мастера
	protected.HandleFunc("/masters/{masterId}/appointments", getMasterAppointments.Handle).Methods(http.MethodGet)

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

// studioWindowFromConfig строит рабочее окно студии из конфигурации
func studioWindowFromConfig(studio config.StudioConfig) (domain.WorkingWindow, error) {
	open, err := types.NewTimeStringFromString(studio.OpenTime)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("open_time: %w", err)
	}
	close, err := types.NewTimeStringFromString(studio.CloseTime)
	if err != nil {
		return domain.WorkingWindow{}, fmt.Errorf("close_time: %w", err)
	}
	return domain.WorkingWindow{
		Open:      open,
		Close:     close,
		IsWorking: true,
	}, nil
}
