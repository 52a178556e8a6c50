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

	assignSlotHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/assign_slot"
	createCustomerHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/create_customer"
	customerLabelHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/customer_label"
	getCustomerHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/get_customer"
	getStorageMapHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/get_storage_map"
	locationLabelHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/location_label"
	searchCustomersHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/search_customers"
	updateCustomerHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/update_customer"
	vacateSlotHandler "github.com/m04kA/THS-StorageService/internal/api/handlers/vacate_slot"
	"github.com/m04kA/THS-StorageService/internal/api/middleware"
	"github.com/m04kA/THS-StorageService/internal/config"
	assignmentRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/assignment"
	customerRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/customer"
	customersService "github.com/m04kA/THS-StorageService/internal/service/customers"
	storageMapService "github.com/m04kA/THS-StorageService/internal/service/storagemap"
	assignSlotUC "github.com/m04kA/THS-StorageService/internal/usecase/assign_slot"
	vacateSlotUC "github.com/m04kA/THS-StorageService/internal/usecase/vacate_slot"
	"github.com/m04kA/THS-StorageService/pkg/dbmetrics"
	"github.com/m04kA/THS-StorageService/pkg/logger"
	"github.com/m04kA/THS-StorageService/pkg/metrics"
	"github.com/m04kA/THS-StorageService/pkg/simpletxmanager"
	"github.com/m04kA/THS-StorageService/pkg/txmanager"
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

	log.Info("Starting THS-StorageService...")
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
		customerRepository   *customerRepo.Repository
		assignmentRepository *assignmentRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		customerRepository = customerRepo.NewRepository(wrappedDB)
		assignmentRepository = assignmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		customerRepository = customerRepo.NewRepository(db)
		assignmentRepository = assignmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	customerSvc := customersService.NewService(
		customerRepository,
		assignmentRepository,
		log,
	)
	storageMapSvc := storageMapService.NewService(assignmentRepository, log)

	// Инициализируем use cases
	assignSlotUseCase := assignSlotUC.NewUseCase(
		customerRepository,
		assignmentRepository,
		txMgr,
		log,
	)
	vacateSlotUseCase := vacateSlotUC.NewUseCase(
		customerRepository,
		assignmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createCustomer := createCustomerHandler.NewHandler(customerSvc, log)
	getCustomer := getCustomerHandler.NewHandler(customerSvc, log)
	updateCustomer := updateCustomerHandler.NewHandler(customerSvc, log)
	searchCustomers := searchCustomersHandler.NewHandler(customerSvc, log)
	assignSlot := assignSlotHandler.NewHandler(assignSlotUseCase, log)
	vacateSlot := vacateSlotHandler.NewHandler(vacateSlotUseCase, log)
	getStorageMap := getStorageMapHandler.NewHandler(storageMapSvc, log)
	customerLabel := customerLabelHandler.NewHandler(customerSvc, log)
	locationLabel := locationLabelHandler.NewHandler(log)

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

	// Этикетка места хранения (QR для печати на полку)
	api.HandleFunc("/storage/slots/{locationCode}/label", locationLabel.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Клиенты ---
	// Создание клиента
	protected.HandleFunc("/customers", createCustomer.Handle).Methods(http.MethodPost)

	// Поиск клиентов (код места или подстрока имени/госномера)
	protected.HandleFunc("/customers/search", searchCustomers.Handle).Methods(http.MethodGet)

	// Получение клиента по ID
	protected.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)

	// Частичное обновление профиля клиента
	protected.HandleFunc("/customers/{customerId}", updateCustomer.Handle).Methods(http.MethodPatch)

	// Этикетка комплекта шин клиента (QR для печати)
	protected.HandleFunc("/customers/{customerId}/label", customerLabel.Handle).Methods(http.MethodGet)

	// --- Места хранения ---
	// Назначение / перемещение клиента на место
	protected.HandleFunc("/customers/{customerId}/storage-slot", assignSlot.Handle).Methods(http.MethodPut)

	// Снятие клиента с места (идемпотентно)
	protected.HandleFunc("/customers/{customerId}/storage-slot", vacateSlot.Handle).Methods(http.MethodDelete)

	// Карта склада (все 72 места с занятостью)
	protected.HandleFunc("/storage/map", getStorageMap.Handle).Methods(http.MethodGet)

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
