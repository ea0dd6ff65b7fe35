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

	createCustomFieldHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_custom_field"
	createReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_reservation"
	createServiceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_service"
	createSpecialistHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_specialist"
	deleteReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_reservation"
	deleteServiceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_service"
	deleteSpecialistHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_specialist"
	getColumnOrderHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_column_order"
	getDayScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_day_schedule"
	getReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/health"
	listCustomFieldsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_custom_fields"
	listServicesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_services"
	listSpecialistsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_specialists"
	moveReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/move_reservation"
	updateColumnOrderHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_column_order"
	updateReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_reservation"
	updateServiceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_service"
	updateSpecialistHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_specialist"
	uploadSpecialistPhotoHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/upload_specialist_photo"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/uploads"
	reservationsService "github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
	servicesService "github.com/m04kA/SMC-ScheduleService/internal/service/services"
	specialistsService "github.com/m04kA/SMC-ScheduleService/internal/service/specialists"
	createReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	moveReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/move_reservation"
	updateReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем хранилище загружаемых файлов (фото сотрудников)
	fileStorage, err := uploads.NewStorage(cfg.Uploads.Dir, cfg.Uploads.PublicURL)
	if err != nil {
		log.Fatal("Failed to initialize uploads storage: %v", err)
	}
	log.Info("Uploads storage initialized (dir=%s, public_url=%s)", cfg.Uploads.Dir, cfg.Uploads.PublicURL)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		specialistRepository  *specialistRepo.Repository
		serviceRepository     *serviceRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		specialistRepository = specialistRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		specialistRepository = specialistRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, log)
	specialistSvc := specialistsService.NewService(specialistRepository, fileStorage, log)
	catalogSvc := servicesService.NewService(serviceRepository, txMgr, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		specialistRepository,
		serviceRepository,
		txMgr,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		specialistRepository,
		serviceRepository,
		txMgr,
		log,
	)
	moveReservationUseCase := moveReservationUC.NewUseCase(
		reservationRepository,
		specialistRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	moveReservation := moveReservationHandler.NewHandler(moveReservationUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)

	listSpecialists := listSpecialistsHandler.NewHandler(specialistSvc, log)
	createSpecialist := createSpecialistHandler.NewHandler(specialistSvc, log)
	updateSpecialist := updateSpecialistHandler.NewHandler(specialistSvc, log)
	deleteSpecialist := deleteSpecialistHandler.NewHandler(specialistSvc, log)
	uploadSpecialistPhoto := uploadSpecialistPhotoHandler.NewHandler(specialistSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	listCustomFields := listCustomFieldsHandler.NewHandler(catalogSvc, log)
	createCustomField := createCustomFieldHandler.NewHandler(catalogSvc, log)
	getColumnOrder := getColumnOrderHandler.NewHandler(catalogSvc, log)
	updateColumnOrder := updateColumnOrderHandler.NewHandler(catalogSvc, log)

	health := healthHandler.NewHandler(db)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Статическая раздача загруженных файлов (фото сотрудников)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(fileStorage.Dir()))))

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Брони ---
	api.HandleFunc("/reservations", getDaySchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{reservationId}/move", moveReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Сотрудники ---
	api.HandleFunc("/staff", listSpecialists.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff", createSpecialist.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{staffId}", updateSpecialist.Handle).Methods(http.MethodPut)
	api.HandleFunc("/staff/{staffId}", deleteSpecialist.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/staff/{staffId}/photo", uploadSpecialistPhoto.Handle).Methods(http.MethodPost)

	// --- Каталог услуг ---
	// Более специфичные пути регистрируются раньше {serviceId}
	api.HandleFunc("/services/custom-fields", listCustomFields.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/custom-fields", createCustomField.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/column-order", getColumnOrder.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/column-order", updateColumnOrder.Handle).Methods(http.MethodPut)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	api.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

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
