package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminCancelBookingHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/admin_cancel_booking"
	adminLoginHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/admin_login"
	cancelByTokenHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/cancel_by_token"
	createBookingHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/get_bookings"
	getBusySlotsHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/get_busy_slots"
	listServicesHandler "github.com/m04kA/SMC-CarWashBooking/internal/api/handlers/list_services"
	"github.com/m04kA/SMC-CarWashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/config"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWashBooking/internal/notifications"
	adminService "github.com/m04kA/SMC-CarWashBooking/internal/service/admin"
	bookingsService "github.com/m04kA/SMC-CarWashBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-CarWashBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_available_slots"
	getBusySlotsUC "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_busy_slots"
	"github.com/m04kA/SMC-CarWashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
	"github.com/m04kA/SMC-CarWashBooking/pkg/metrics"
	"github.com/m04kA/SMC-CarWashBooking/pkg/mq"
	"github.com/m04kA/SMC-CarWashBooking/pkg/token"
	"github.com/m04kA/SMC-CarWashBooking/pkg/txmanager"
)

// bookingStorage хранилище бронирований: PostgreSQL или in-memory
type bookingStorage interface {
	Create(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	ListConfirmed(ctx context.Context, window domain.TimeRange) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// bookingNotifier получатель событий бронирования
type bookingNotifier interface {
	NotifyBookingCreated(booking *domain.Booking, service domain.ServiceDefinition)
	NotifyBookingCanceled(booking *domain.Booking, service domain.ServiceDefinition, channel string)
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	hashPassword := flag.String("hash-password", "", "print bcrypt hash of the given admin password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := adminService.HashPassword(*hashPassword)
		if err != nil {
			fmt.Printf("Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-CarWashBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Invalid business timezone: %v", err)
	}
	hours, err := cfg.Business.Hours()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}

	serviceCatalog, err := catalog.New(cfg.Services())
	if err != nil {
		log.Fatal("Invalid catalog: %v", err)
	}
	log.Info("Catalog loaded: %d services, business hours %s-%s (%s)",
		len(cfg.Catalog), hours.Open, hours.Close, location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище и менеджер транзакций
	var (
		bookingRepository bookingStorage
		txMgr             txManager
		healthCheck       = func(context.Context) error { return nil }
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		bookingRepository = memory.NewStore()
		txMgr = memory.NewTxManager()
		log.Warn("Using in-memory storage: bookings are lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.Wrap(db, metricsCollector)
		go wrappedDB.CollectStats(time.Duration(cfg.Metrics.StatsInterval)*time.Second, stopMetricsCh)

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB,
			txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts),
			txmanager.WithBackoff(time.Duration(cfg.Database.TxBackoffMs)*time.Millisecond),
			txmanager.WithRetryHook(func() {
				if metricsCollector != nil {
					metricsCollector.DBTxRetriesTotal.Inc()
				}
			}),
		)
		healthCheck = wrappedDB.PingContext
	}

	// Уведомления
	notifier, shutdownNotifier := buildNotifier(cfg, location, metricsCollector, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		serviceCatalog,
		notifier,
		metricsCollector,
		location,
		log,
	)
	adminSvc := adminService.NewService(adminService.Config{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.Admin.JWTSecret,
		TokenTTL:     time.Duration(cfg.Admin.TokenTTLMinutes) * time.Minute,
	}, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		serviceCatalog,
		bookingRepository,
		txMgr,
		token.NewGenerator(),
		notifier,
		metricsCollector,
		hours,
		log,
	)
	getBusySlotsUseCase := getBusySlotsUC.NewUseCase(bookingRepository, location, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceCatalog,
		bookingRepository,
		hours,
		cfg.Business.SlotStepMinutes,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(serviceCatalog, log)
	getBusySlots := getBusySlotsHandler.NewHandler(getBusySlotsUseCase, location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	cancelByToken := cancelByTokenHandler.NewHandler(bookingSvc, log)
	adminLogin := adminLoginHandler.NewHandler(adminSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	adminCancelBooking := adminCancelBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := healthCheck(req.Context()); err != nil {
			log.Error("GET /healthz - Storage unavailable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getBusySlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/busy-slots", getBusySlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/book", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// Ссылка отмены из письма клиенту
	r.HandleFunc("/cancel/{token}", cancelByToken.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(adminSvc, log))
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/cancel/{bookingId}", adminCancelBooking.Handle).Methods(http.MethodPost)

	handler := middleware.Recover(log.Zap())(middleware.AccessLog(log.Zap())(r))

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Дожидаемся отправки уже принятых уведомлений
	shutdownNotifier(shutdownCtx)

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// buildNotifier собирает доставку уведомлений по конфигурации.
// inline: диспетчер вызывает отправителей из процесса API.
// rabbitmq: диспетчер только публикует события, отправляет cmd/notifier.
func buildNotifier(
	cfg *config.Config,
	location *time.Location,
	m *metrics.Metrics,
	log *logger.Logger,
) (bookingNotifier, func(context.Context)) {
	if !cfg.Notifications.Enabled {
		log.Info("Notifications disabled")
		return notifications.Nop{}, func(context.Context) {}
	}

	var (
		senders []notifications.Sender
		closers []func() error
	)

	switch cfg.Notifications.Transport {
	case config.TransportRabbitMQ:
		publisher, err := mq.NewPublisher(cfg.Notifications.RabbitMQ.URL, cfg.Notifications.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		senders = []notifications.Sender{notifications.NewQueueSender(publisher)}
		closers = append(closers, publisher.Close)
		log.Info("Notifications published to exchange %s", cfg.Notifications.RabbitMQ.Exchange)

	default:
		var err error
		senders, err = notifications.NewSenders(cfg.NotificationChannels())
		if err != nil {
			log.Fatal("Failed to initialize notification senders: %v", err)
		}
		log.Info("Notifications delivered inline via %d sender(s)", len(senders))
	}

	dispatcher := notifications.NewDispatcher(senders, notifications.Options{
		Workers:     cfg.Notifications.Workers,
		QueueSize:   cfg.Notifications.QueueSize,
		SendTimeout: time.Duration(cfg.Notifications.SendTimeout) * time.Second,
		Location:    location,
	}, m, log)
	dispatcher.Start()

	return dispatcher, func(ctx context.Context) {
		if err := dispatcher.Shutdown(ctx); err != nil {
			log.Error("Notification dispatcher shutdown: %v", err)
		}
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Error("Failed to close notification transport: %v", err)
			}
		}
	}
}
