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

	changeStatusHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/change_reservation_status"
	createReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/delete_reservation"
	findAvailableTablesHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/find_available_tables"
	getAvailabilityMapHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_availability_map"
	getReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_reservation"
	getRestaurantReservationsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_restaurant_reservations"
	getRestaurantScheduleHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_restaurant_schedule"
	getRestaurantSettingsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_restaurant_settings"
	updateRestaurantSettingsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/update_restaurant_settings"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/config"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/cache"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/notify"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	scheduleRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
	"github.com/m04kA/SMC-RestaurantService/internal/realtime"
	reservationsService "github.com/m04kA/SMC-RestaurantService/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-RestaurantService/internal/service/settings"
	buildAvailabilityMapUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/build_availability_map"
	createReservationUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
	findAvailableTablesUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/find_available_tables"
	getWeekScheduleUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_week_schedule"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
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

	log.Info("Starting SMC-RestaurantService...")
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
		reservationRepository *reservationRepo.Repository
		tableRepository       *tableRepo.Repository
		restaurantRepository  *restaurantRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		tableRepository = tableRepo.NewRepository(wrappedDB)
		restaurantRepository = restaurantRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		tableRepository = tableRepo.NewRepository(db)
		restaurantRepository = restaurantRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем издателя событий (если RabbitMQ включен)
	var publisher *notify.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher = notify.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		defer publisher.Close()
		log.Info("RabbitMQ publisher initialized (queue=%s)", cfg.RabbitMQ.Queue)
	}

	// Инициализируем кэш карт доступности (если Redis включен)
	var availabilityCache *cache.AvailabilityCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		availabilityCache = cache.NewAvailabilityCache(
			redisClient,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		log.Info("Redis availability cache initialized (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Realtime hub для websocket подписчиков
	hub := realtime.NewHub(log)
	wsHandler := realtime.NewHandler(hub, log)

	// Опциональные зависимости use cases: nil-интерфейсы при выключенных компонентах
	var (
		eventPublisher   createReservationUC.EventPublisher
		cacheInvalidator createReservationUC.AvailabilityInvalidator
		mapCache         buildAvailabilityMapUC.MapCache
		svcPublisher     reservationsService.EventPublisher
		svcInvalidator   reservationsService.AvailabilityInvalidator
	)
	if publisher != nil {
		eventPublisher = publisher
		svcPublisher = publisher
	}
	if availabilityCache != nil {
		cacheInvalidator = availabilityCache
		mapCache = availabilityCache
		svcInvalidator = availabilityCache
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		restaurantRepository,
		txMgr,
		svcPublisher,
		hub,
		svcInvalidator,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		restaurantRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		restaurantRepository,
		settingsRepository,
		scheduleRepository,
		txMgr,
		eventPublisher,
		hub,
		cacheInvalidator,
		log,
	)

	findAvailableTablesUseCase := findAvailableTablesUC.NewUseCase(
		reservationRepository,
		tableRepository,
		restaurantRepository,
		settingsRepository,
		scheduleRepository,
		log,
	)

	buildAvailabilityMapUseCase := buildAvailabilityMapUC.NewUseCase(
		reservationRepository,
		tableRepository,
		scheduleRepository,
		mapCache,
		log,
	)

	getWeekScheduleUseCase := getWeekScheduleUC.NewUseCase(
		scheduleRepository,
		restaurantRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	findAvailableTables := findAvailableTablesHandler.NewHandler(findAvailableTablesUseCase, log)
	getAvailabilityMap := getAvailabilityMapHandler.NewHandler(buildAvailabilityMapUseCase, log)
	getRestaurantSchedule := getRestaurantScheduleHandler.NewHandler(getWeekScheduleUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	changeStatus := changeStatusHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getRestaurantReservations := getRestaurantReservationsHandler.NewHandler(reservationSvc, log)
	getRestaurantSettings := getRestaurantSettingsHandler.NewHandler(settingsSvc, log)
	updateRestaurantSettings := updateRestaurantSettingsHandler.NewHandler(settingsSvc, log)

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

	// Websocket подписка на события доступности
	r.HandleFunc("/ws", wsHandler.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Карта доступности столика на день
	api.HandleFunc("/tables/{tableId}/availability-map",
		getAvailabilityMap.Handle).Methods(http.MethodGet)

	// Подбор свободных столиков под окно и число гостей
	api.HandleFunc("/restaurants/{restaurantId}/available-tables",
		findAvailableTables.Handle).Methods(http.MethodGet)

	// Недельное расписание работы ресторана
	api.HandleFunc("/restaurants/{restaurantId}/schedule",
		getRestaurantSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT bearer токен)
	// ============================================================

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Брони ---
	// Создание брони
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Смена статуса брони
	protected.HandleFunc("/reservations/{reservationId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// Удаление брони
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Управление рестораном (для владельцев) ---
	// Список броней ресторана
	protected.HandleFunc("/restaurants/{restaurantId}/reservations",
		getRestaurantReservations.Handle).Methods(http.MethodGet)

	// Настройки бронирования ресторана
	protected.HandleFunc("/restaurants/{restaurantId}/settings",
		getRestaurantSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/restaurants/{restaurantId}/settings",
		updateRestaurantSettings.Handle).Methods(http.MethodPatch)

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
