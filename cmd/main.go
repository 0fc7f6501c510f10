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
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/get_booking"
	getServiceHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/get_service"
	listBookingsHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/list_services"
	retentionStatsHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/retention_stats"
	runRetentionHandler "github.com/m04kA/SMC-PetSittingService/internal/api/handlers/run_retention"
	"github.com/m04kA/SMC-PetSittingService/internal/api/middleware"
	"github.com/m04kA/SMC-PetSittingService/internal/config"
	"github.com/m04kA/SMC-PetSittingService/internal/infra/cache/rediscache"
	"github.com/m04kA/SMC-PetSittingService/internal/infra/messaging/events"
	bookingRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/customer"
	unavailabilityRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/unavailability"
	availabilityService "github.com/m04kA/SMC-PetSittingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-PetSittingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-PetSittingService/internal/service/catalog"
	"github.com/m04kA/SMC-PetSittingService/internal/service/notifier"
	"github.com/m04kA/SMC-PetSittingService/internal/service/pricing"
	createBookingUC "github.com/m04kA/SMC-PetSittingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-PetSittingService/internal/usecase/get_available_slots"
	retentionCleanupUC "github.com/m04kA/SMC-PetSittingService/internal/usecase/retention_cleanup"
	"github.com/m04kA/SMC-PetSittingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetSittingService/pkg/logger"
	"github.com/m04kA/SMC-PetSittingService/pkg/metrics"
	"github.com/m04kA/SMC-PetSittingService/pkg/txmanager"
)

// retentionRunTimeout ограничение на один плановый запуск очистки
const retentionRunTimeout = 10 * time.Minute

// eventPublisher публикатор событий, который нужно закрыть при остановке
type eventPublisher interface {
	notifier.Publisher
	Close() error
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	settings, err := cfg.Settings()
	if err != nil {
		fmt.Printf("Failed to build settings: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-PetSittingService...")
	log.Info("Configuration loaded from %s (timezone=%s, retention_years=%d, per_service_capacity=%t)",
		configPath, settings.Location, settings.RetentionYears, settings.PerServiceCapacity)

	// Инициализируем метрики (если включены). nil *metrics.Metrics безопасен для всех потребителей.
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB).WithMaxRetries(cfg.Database.TxMaxRetries)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, settings.Location)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	unavailabilityRepository := unavailabilityRepo.NewRepository(wrappedDB, settings.Location)

	// Кэш календаря (опционально). Недоступный redis отключает кэш, но не останавливает сервис.
	var (
		calendarCache     availabilityService.Cache
		invalidationCache notifier.Cache
	)
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()

		if err != nil {
			log.Warn("Redis is unavailable at %s, availability cache disabled: %v", cfg.Cache.Addr, err)
		} else {
			cache := rediscache.NewAvailabilityCache(redisClient, cfg.Cache.TTL(), cfg.Cache.KeyPrefix, settings.Location)
			calendarCache, invalidationCache = cache, cache
			log.Info("Availability cache enabled (addr=%s, ttl=%s)", cfg.Cache.Addr, cfg.Cache.TTL())
		}
	}

	// Публикация событий (опционально)
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		writer := events.NewWriter(cfg.Events.Brokers, cfg.Events.Topic)
		publisher = events.NewPublisher(writer, time.Duration(cfg.Events.WriteTimeout)*time.Second)
		log.Info("Booking events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы
	bookingNotifier := notifier.New(invalidationCache, publisher, metricsCollector, log)
	calculator := availabilityService.NewCalculator(
		bookingRepository,
		unavailabilityRepository,
		calendarCache,
		settings,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, bookingNotifier, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		catalogRepository,
		calculator,
		pricing.NewEngine(),
		txMgr,
		bookingNotifier,
		settings,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		calculator,
		settings,
		log,
	)

	retentionUseCase := retentionCleanupUC.NewUseCase(
		bookingRepository,
		customerRepository,
		unavailabilityRepository,
		txMgr,
		metricsCollector,
		settings,
		cfg.Retention.CleanupUnavailabilities,
		log,
	)

	// Плановый запуск очистки
	var scheduler *cron.Cron
	if cfg.Retention.Enabled {
		scheduler = cron.New(cron.WithLocation(settings.Location))
		_, err := scheduler.AddFunc(cfg.Retention.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
			defer cancel()
			if _, err := retentionUseCase.Execute(ctx); err != nil {
				log.Error("Scheduled retention sweep failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule retention sweep: %v", err)
		}
		scheduler.Start()
		log.Info("Retention sweep scheduled (%s, %s)", cfg.Retention.Schedule, settings.Location)
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(calculator, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(calculator, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, settings.Location, log)
	runRetention := runRetentionHandler.NewHandler(retentionUseCase, log)
	retentionStats := retentionStatsHandler.NewHandler(retentionUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календарь ---
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodGet)

	// --- Услуги ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Администрирование (доступ ограничивает gateway) ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/retention/run", runRetention.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/retention/stats", retentionStats.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся текущего запуска очистки
	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
			log.Info("Retention scheduler stopped")
		case <-shutdownCtx.Done():
			log.Warn("Retention sweep still running at shutdown")
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
