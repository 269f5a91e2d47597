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

	cancelAppointmentHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/get_availability"
	getBranchAppointmentsHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/get_branch_appointments"
	getClientAppointmentsHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/get_client_appointments"
	getScheduleHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/get_schedule"
	manageBlackoutsHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/manage_blackouts"
	updateScheduleHandler "github.com/agendafacil/AF-SchedulingService/internal/api/handlers/update_schedule"
	"github.com/agendafacil/AF-SchedulingService/internal/api/middleware"
	"github.com/agendafacil/AF-SchedulingService/internal/config"
	appointmentRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/appointment"
	blackoutRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/blackout"
	scheduleRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/internal/lock"
	appointmentsService "github.com/agendafacil/AF-SchedulingService/internal/service/appointments"
	scheduleService "github.com/agendafacil/AF-SchedulingService/internal/service/schedule"
	createAppointmentUC "github.com/agendafacil/AF-SchedulingService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/agendafacil/AF-SchedulingService/internal/usecase/get_availability"
	"github.com/agendafacil/AF-SchedulingService/pkg/dbmetrics"
	"github.com/agendafacil/AF-SchedulingService/pkg/logger"
	"github.com/agendafacil/AF-SchedulingService/pkg/metrics"
	"github.com/agendafacil/AF-SchedulingService/pkg/simpletxmanager"
	"github.com/agendafacil/AF-SchedulingService/pkg/txmanager"
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

	log.Info("Starting AF-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Подключаемся к Redis (блокировки ресурсов на пути создания записи)
	locker, err := lock.NewRedisLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer locker.Close()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Инициализируем интеграционного клиента
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		blackoutRepository    *blackoutRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		blackoutRepository = blackoutRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		blackoutRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		blackoutRepository,
		catalogClient,
		txMgr,
		locker,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		blackoutRepository,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBranchAppointments := getBranchAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	manageBlackouts := manageBlackoutsHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступности филиала на дату
	api.HandleFunc("/branches/{branchId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Получение недельного расписания филиала или сотрудника
	api.HandleFunc("/branches/{branchId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Client-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление филиалом (для менеджеров) ---
	// Список записей филиала
	protected.HandleFunc("/branches/{branchId}/appointments", getBranchAppointments.Handle).Methods(http.MethodGet)

	// Создание/обновление правила недельного расписания
	protected.HandleFunc("/branches/{branchId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Удаление правила расписания (день становится закрытым)
	protected.HandleFunc("/branches/{branchId}/schedule/{weekday}", updateSchedule.HandleDelete).Methods(http.MethodDelete)

	// --- Периоды недоступности ---
	protected.HandleFunc("/branches/{branchId}/blackouts", manageBlackouts.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branchId}/employees/{employeeId}/blackouts", manageBlackouts.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/blackouts/{blackoutId}", manageBlackouts.HandleDelete).Methods(http.MethodDelete)

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
