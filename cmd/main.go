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

	createBookingHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/get_schedule"
	listBookingsHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/list_bookings"
	listDeletedBookingsHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/list_deleted_bookings"
	updateBookingHandler "github.com/m04kA/VH-BookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/VH-BookingService/internal/api/middleware"
	"github.com/m04kA/VH-BookingService/internal/config"
	bookingRepo "github.com/m04kA/VH-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/VH-BookingService/internal/infra/storage/catalog"
	depositRepo "github.com/m04kA/VH-BookingService/internal/infra/storage/deposit"
	availabilityService "github.com/m04kA/VH-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/VH-BookingService/internal/service/bookings"
	pricingService "github.com/m04kA/VH-BookingService/internal/service/pricing"
	createBookingUC "github.com/m04kA/VH-BookingService/internal/usecase/create_booking"
	getScheduleUC "github.com/m04kA/VH-BookingService/internal/usecase/get_schedule"
	updateBookingUC "github.com/m04kA/VH-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/VH-BookingService/pkg/dbmetrics"
	"github.com/m04kA/VH-BookingService/pkg/logger"
	"github.com/m04kA/VH-BookingService/pkg/metrics"
	"github.com/m04kA/VH-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/VH-BookingService/pkg/txmanager"
	"github.com/m04kA/VH-BookingService/pkg/txref"
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

	log.Info("Starting VH-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
		depositRepository *depositRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		depositRepository = depositRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		depositRepository = depositRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		depositRepository,
		log,
	)
	calculator := pricingService.NewCalculator(catalogRepository, cfg.Pricing, log)
	guard := availabilityService.NewGuard(bookingRepository, cfg.Booking, log)
	refGenerator := txref.New()

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		depositRepository,
		catalogRepository,
		calculator,
		guard,
		bookingSvc,
		txMgr,
		refGenerator,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		depositRepository,
		catalogRepository,
		calculator,
		guard,
		bookingSvc,
		txMgr,
		refGenerator,
		log,
	)

	getScheduleUseCase := getScheduleUC.NewUseCase(
		bookingRepository,
		cfg.Booking,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listDeletedBookings := listDeletedBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Календарь занятости на ближайшее окно бронирования
	api.HandleFunc("/bookings/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Списки бронирований
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/deleted", listDeletedBookings.Handle).Methods(http.MethodGet)

	// Бронирование по ID
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Обновление бронирования
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", updateBooking.Handle).Methods(http.MethodPut)

	// Мягкое удаление бронирования
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

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
