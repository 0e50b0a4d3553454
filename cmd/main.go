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

	adminConfirmCancellationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/admin_confirm_cancellation"
	adminRequestCancelCodeHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/admin_request_cancel_code"
	bulkUpdateSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/bulk_update_slots"
	confirmCancellationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/confirm_cancellation"
	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_slot"
	decideBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/decide_booking"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getBookingByCodeHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking_by_code"
	listBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_bookings"
	listSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_slots"
	lookupCancellationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/lookup_cancellation"
	requestCancelCodeHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/request_cancel_code"
	updateSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	challengeRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/challenge"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
	authServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/authservice"
	mailerClient "github.com/m04kA/SMC-ReservationService/internal/integrations/mailer"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	otpService "github.com/m04kA/SMC-ReservationService/internal/service/otp"
	slotsService "github.com/m04kA/SMC-ReservationService/internal/service/slots"
	adminCancellationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/admin_cancellation"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	customerCancellationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/customer_cancellation"
	decideBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/decide_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
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

	// Инициализируем интеграционных клиентов
	mailClient := mailerClient.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.From,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Mailer=%s timeout=%ds, AuthService=%s timeout=%ds)",
		cfg.Mailer.URL, cfg.Mailer.Timeout, cfg.AuthService.URL, cfg.AuthService.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository      *slotRepo.Repository
		bookingRepository   *bookingRepo.Repository
		challengeRepository *challengeRepo.Repository
		txMgr               TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		challengeRepository = challengeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		challengeRepository = challengeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(slotRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	otpSvc := otpService.NewService(
		challengeRepository,
		time.Duration(cfg.Reservations.OtpTTLMinutes)*time.Minute,
		log,
	)

	// Фоновая чистка истекших кодов подтверждения
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-janitorCtx.Done():
				return
			case <-ticker.C:
				if _, err := otpSvc.PurgeExpired(janitorCtx); err != nil {
					log.Error("OTP janitor: %v", err)
				}
			}
		}
	}()

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		log,
	)
	decideBookingUseCase := decideBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		mailClient,
		log,
	)
	customerCancellationUseCase := customerCancellationUC.NewUseCase(
		bookingRepository,
		slotRepository,
		otpSvc,
		txMgr,
		mailClient,
		log,
	)
	adminCancellationUseCase := adminCancellationUC.NewUseCase(
		bookingRepository,
		slotRepository,
		otpSvc,
		txMgr,
		mailClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	decideBooking := decideBookingHandler.NewHandler(decideBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByCode := getBookingByCodeHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	bulkUpdateSlots := bulkUpdateSlotsHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	lookupCancellation := lookupCancellationHandler.NewHandler(customerCancellationUseCase, log)
	requestCancelCode := requestCancelCodeHandler.NewHandler(customerCancellationUseCase, log)
	confirmCancellation := confirmCancellationHandler.NewHandler(customerCancellationUseCase, log)
	adminRequestCancelCode := adminRequestCancelCodeHandler.NewHandler(adminCancellationUseCase, log)
	adminConfirmCancellation := adminConfirmCancellationHandler.NewHandler(adminCancellationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID())

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Витрина слотов с остатками мест
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (попадает в pending до решения администратора)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Самостоятельная отмена по публичному коду бронирования
	api.HandleFunc("/cancellations/lookup", lookupCancellation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/cancellations/request-code", requestCancelCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/cancellations/confirm", confirmCancellation.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-Token header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authClient, log))

	// --- Бронирования ---
	// Список бронирований с фильтрами
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Поиск бронирования по публичному коду (клиент называет его администратору)
	protected.HandleFunc("/bookings/by-code/{uniqueCode}", getBookingByCode.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Решение по бронированию (approve/reject)
	protected.HandleFunc("/bookings/{bookingId}/decision", decideBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования администратором (с кодом подтверждения клиента)
	protected.HandleFunc("/bookings/{bookingId}/cancellation/request-code",
		adminRequestCancelCode.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancellation/confirm",
		adminConfirmCancellation.Handle).Methods(http.MethodPost)

	// --- Управление слотами ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/capacity", bulkUpdateSlots.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)

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

	stopJanitor()

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
