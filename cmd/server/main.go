package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/juice-reservations/internal/api"
	"github.com/m04kA/juice-reservations/internal/config"
	"github.com/m04kA/juice-reservations/internal/infra/storage/backend"
	"github.com/m04kA/juice-reservations/internal/infra/storage/session"
	"github.com/m04kA/juice-reservations/internal/integrations/mailer"
	"github.com/m04kA/juice-reservations/internal/service/auth"
	"github.com/m04kA/juice-reservations/internal/service/availability"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	adminDashboardUC "github.com/m04kA/juice-reservations/internal/usecase/admin_dashboard"
	cancelReservationUC "github.com/m04kA/juice-reservations/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/juice-reservations/internal/usecase/create_reservation"
	getReservationUC "github.com/m04kA/juice-reservations/internal/usecase/get_reservation"
	modifyReservationUC "github.com/m04kA/juice-reservations/internal/usecase/modify_reservation"
	"github.com/m04kA/juice-reservations/pkg/logger"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting %s (environment=%s)...", cfg.App.Name, cfg.App.Environment)

	location, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := backend.Open(startCtx, cfg.Database, metricsCollector, log)
	cancelStart()
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.Close()
	log.Info("Storage backend: %s (writable=%t)", store.Kind(), store.Writable())

	// Redis: ограничение частоты запросов и отозванные сессии
	redisClient := connectRedis(cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Почта: SMTP, если настроен, иначе письма только логируются
	var confirmations createReservationUC.Mailer
	if cfg.SMTP.Enabled() {
		confirmations = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			Timeout:  time.Duration(cfg.SMTP.Timeout) * time.Second,
		}, location, log)
		log.Info("SMTP mailer configured (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		confirmations = mailer.NewLogSender(location, log)
		log.Warn("SMTP is not configured: confirmation e-mails are only logged")
	}

	// Инициализируем сервисы
	availabilitySvc := availability.NewService(store.Presences(), store.TxManager(), metricsCollector, location, log)
	reservationsSvc := reservations.NewService(store.Reservations(), nil, log)
	authSvc, err := auth.NewService(auth.Config{
		Password:      cfg.Admin.Password,
		PasswordHash:  cfg.Admin.PasswordHash,
		SessionSecret: cfg.Admin.SessionSecret,
		SessionTTL:    time.Duration(cfg.Admin.SessionTTL) * time.Hour,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize auth service: %v", err)
	}
	if redisClient != nil {
		authSvc.WithRevocations(session.NewRedisRevocations(redisClient))
	}

	// Инициализируем use cases и роутер
	router := api.NewRouter(api.Dependencies{
		Config:            cfg,
		Location:          location,
		Storage:           store,
		StorageKind:       string(store.Kind()),
		Availability:      availabilitySvc,
		Reservations:      reservationsSvc,
		Auth:              authSvc,
		CreateReservation: createReservationUC.NewUseCase(availabilitySvc, reservationsSvc, confirmations, metricsCollector, cfg.App.BaseURL, log),
		GetReservation:    getReservationUC.NewUseCase(reservationsSvc, log),
		ModifyReservation: modifyReservationUC.NewUseCase(reservationsSvc, metricsCollector, log),
		CancelReservation: cancelReservationUC.NewUseCase(reservationsSvc, metricsCollector, log),
		AdminDashboard:    adminDashboardUC.NewUseCase(availabilitySvc, reservationsSvc, location, log),
		Metrics:           metricsCollector,
		Redis:             redisClient,
		Logger:            log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Info("Server stopped gracefully")
}

// connectRedis возвращает nil, если Redis не настроен или недоступен: тогда лимиты не применяются
func connectRedis(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Warn("Redis is not configured: rate limiting is disabled, revoked sessions are kept in memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis at %s is unreachable, rate limiting is disabled: %v", cfg.Addr, err)
		_ = client.Close()
		return nil
	}

	log.Info("Connected to Redis at %s", cfg.Addr)
	return client
}
