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

	bookSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/book_slot"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createArrangementHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_arrangement"
	deleteArrangementHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_arrangement"
	deleteTemplateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_template"
	generateSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/generate_slots"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getTemplateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_template"
	listArrangementsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_arrangements"
	listSlotsByDateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_slots_by_date"
	listSlotsByMonthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_slots_by_month"
	listTemplatesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_templates"
	listUserAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_user_appointments"
	updateStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	upsertTemplateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/upsert_template"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/idempotency"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	arrangementRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/arrangement"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
	billingServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/billingservice"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	arrangementsService "github.com/m04kA/SMC-AppointmentService/internal/service/arrangements"
	slotsService "github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	templatesService "github.com/m04kA/SMC-AppointmentService/internal/service/templates"
	bookSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_slot"
	cancelAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	generateSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
	updateStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
	upsertTemplateUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/upsert_template"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil collector допустим: все точки записи метрик его проверяют
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
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithRetryObserver(metricsCollector))

	// Инициализируем интеграционных клиентов
	billingClient := billingServiceClient.NewClient(
		cfg.BillingService.URL,
		time.Duration(cfg.BillingService.Timeout)*time.Second,
		log,
	)
	if billingClient.Enabled() {
		log.Info("Billing client initialized (BillingService=%s timeout=%ds)",
			cfg.BillingService.URL, cfg.BillingService.Timeout)
	} else {
		log.Warn("Billing service URL is empty, bill status notifications disabled")
	}

	// Инициализируем репозитории
	templateRepository := templateRepo.NewRepository(wrappedDB)
	arrangementRepository := arrangementRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	// Кэш идемпотентности бронирований
	bookingReplays := idempotency.New[*bookSlotUC.Response](
		cfg.Booking.IdempotencyCacheSize,
		time.Duration(cfg.Booking.IdempotencyTTLSeconds)*time.Second,
	)

	// Инициализируем сервисы
	templateSvc := templatesService.NewService(templateRepository, slotRepository, txMgr, log)
	arrangementSvc := arrangementsService.NewService(
		arrangementRepository,
		slotRepository,
		catalogRepository,
		templateRepository,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(slotRepository, catalogRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, catalogRepository, log)

	// Инициализируем use cases
	upsertTemplateUseCase := upsertTemplateUC.NewUseCase(templateRepository, txMgr, log)

	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		arrangementRepository,
		templateRepository,
		catalogRepository,
		slotRepository,
		txMgr,
		metricsCollector,
		log,
	)

	bookSlotUseCase := bookSlotUC.NewUseCase(
		catalogRepository,
		slotRepository,
		appointmentRepository,
		bookingReplays,
		txMgr,
		metricsCollector,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		txMgr,
		time.Duration(cfg.Booking.CancellationLeadHours)*time.Hour,
		log,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		slotRepository,
		billingClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	upsertTemplate := upsertTemplateHandler.NewHandler(upsertTemplateUseCase, log)
	getTemplate := getTemplateHandler.NewHandler(templateSvc, log)
	listTemplates := listTemplatesHandler.NewHandler(templateSvc, log)
	deleteTemplate := deleteTemplateHandler.NewHandler(templateSvc, log)
	createArrangement := createArrangementHandler.NewHandler(arrangementSvc, log)
	listArrangements := listArrangementsHandler.NewHandler(arrangementSvc, log)
	deleteArrangement := deleteArrangementHandler.NewHandler(arrangementSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	listSlotsByDate := listSlotsByDateHandler.NewHandler(slotSvc, log)
	listSlotsByMonth := listSlotsByMonthHandler.NewHandler(slotSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listUserAppointments := listUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты услуги на дату и доступность по дням месяца
	api.HandleFunc("/services/{serviceId}/slots", listSlotsByDate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/slots/month", listSlotsByMonth.Handle).Methods(http.MethodGet)

	// Привязки шаблонов к услуге
	api.HandleFunc("/services/{serviceId}/arrangements", listArrangements.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Шаблоны (для провайдеров) ---
	protected.HandleFunc("/templates", upsertTemplate.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/templates", listTemplates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/templates/{templateId}", getTemplate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/templates/{templateId}", deleteTemplate.Handle).Methods(http.MethodDelete)

	// --- Привязки и генерация слотов ---
	protected.HandleFunc("/services/{serviceId}/arrangements", createArrangement.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/arrangements/{arrangementId}", deleteArrangement.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/arrangements/{arrangementId}/slots", generateSlots.Handle).Methods(http.MethodPost)

	// --- Записи ---
	protected.HandleFunc("/appointments", bookSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/appointments", listUserAppointments.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
