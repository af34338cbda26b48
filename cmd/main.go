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

	approveBookingHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/decline_booking"
	deleteBookingHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/get_booking"
	getPropertyBookingsHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/get_property_bookings"
	getPropertyConfigHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/get_property_config"
	getQuoteHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/get_quote"
	rebuildInventoryHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/rebuild_inventory"
	releaseHoldsHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/release_holds"
	updatePropertyConfigHandler "github.com/sebschult/FeWo-BookingService/internal/api/handlers/update_property_config"
	"github.com/sebschult/FeWo-BookingService/internal/api/middleware"
	"github.com/sebschult/FeWo-BookingService/internal/config"
	bookingRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	holdRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/hold"
	inventoryRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/inventory"
	mailServiceClient "github.com/sebschult/FeWo-BookingService/internal/integrations/mailservice"
	availabilityService "github.com/sebschult/FeWo-BookingService/internal/service/availability"
	bookingsService "github.com/sebschult/FeWo-BookingService/internal/service/bookings"
	catalogService "github.com/sebschult/FeWo-BookingService/internal/service/catalog"
	createBookingUC "github.com/sebschult/FeWo-BookingService/internal/usecase/create_booking"
	getQuoteUC "github.com/sebschult/FeWo-BookingService/internal/usecase/get_quote"
	rebuildInventoryUC "github.com/sebschult/FeWo-BookingService/internal/usecase/rebuild_inventory"
	"github.com/sebschult/FeWo-BookingService/pkg/dbmetrics"
	"github.com/sebschult/FeWo-BookingService/pkg/logger"
	"github.com/sebschult/FeWo-BookingService/pkg/metrics"
	"github.com/sebschult/FeWo-BookingService/pkg/simpletxmanager"
	"github.com/sebschult/FeWo-BookingService/pkg/txmanager"
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

	log.Info("Starting FeWo-BookingService...")
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

	// Инициализируем почтового клиента
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Mail client initialized (MailService=%s timeout=%ds)",
		cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		catalogRepository   *catalogRepo.Repository
		inventoryRepository *inventoryRepo.Repository
		holdRepository      *holdRepo.Repository
	)

	// Интерфейс transaction manager, общий для сервисов и use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB, cfg.Booking.SeasonTieBreak)
		inventoryRepository = inventoryRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db, cfg.Booking.SeasonTieBreak)
		inventoryRepository = inventoryRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		inventoryRepository,
		holdRepository,
		catalogRepository,
		mailClient,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		inventoryRepository,
		holdRepository,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		inventoryRepository,
		holdRepository,
		mailClient,
		txMgr,
		time.Duration(cfg.Booking.HoldTTLHours)*time.Hour,
		log,
	)

	getQuoteUseCase := getQuoteUC.NewUseCase(
		catalogRepository,
		availabilitySvc,
		log,
	)

	rebuildInventoryUseCase := rebuildInventoryUC.NewUseCase(
		bookingRepository,
		inventoryRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getPropertyBookings := getPropertyBookingsHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getPropertyConfig := getPropertyConfigHandler.NewHandler(catalogSvc, log)
	updatePropertyConfig := updatePropertyConfigHandler.NewHandler(catalogSvc, log)
	releaseHolds := releaseHoldsHandler.NewHandler(holdRepository, log)
	rebuildInventory := rebuildInventoryHandler.NewHandler(rebuildInventoryUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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
	// PUBLIC ROUTES (гостевая витрина, без аутентификации)
	// ============================================================

	// Подача гостевой заявки на бронирование
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Расчет стоимости проживания
	api.HandleFunc("/properties/{propertyId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// Занятые ночи для календаря (без причин занятости)
	api.HandleFunc("/properties/{propertyId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Публичная конфигурация объекта
	api.HandleFunc("/properties/{propertyId}/config", getPropertyConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (оператор, X-Admin-Token)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Server.AdminToken, log))

	// --- Заявки ---
	// Карточка заявки
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Список заявок объекта
	protected.HandleFunc("/properties/{propertyId}/bookings", getPropertyBookings.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/decline", declineBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Удаление закрытой заявки
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Управление объектом ---
	// Обновление конфигурации (тарифы, сезоны, налоговые зоны)
	protected.HandleFunc("/properties/{propertyId}/config", updatePropertyConfig.Handle).Methods(http.MethodPut)

	// Принудительный сброс публичных холдов в диапазоне
	protected.HandleFunc("/properties/{propertyId}/holds/release", releaseHolds.Handle).Methods(http.MethodPost)

	// Пересборка инвентаря из подтвержденных заявок
	protected.HandleFunc("/properties/{propertyId}/inventory/rebuild", rebuildInventory.Handle).Methods(http.MethodPost)

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

	// Просроченные холды невидимы для чтения и без подчистки; janitor
	// только не дает таблице расти
	stopJanitorCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purged, err := holdRepository.PurgeExpired(context.Background(), time.Now())
				if err != nil {
					log.Warn("Hold janitor: purge failed: %v", err)
					continue
				}
				if purged > 0 {
					log.Info("Hold janitor: purged %d expired holds", purged)
				}
			case <-stopJanitorCh:
				return
			}
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopJanitorCh)

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
