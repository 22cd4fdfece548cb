package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/db"
	"github.com/ignatzorin/skillswap-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/skillswap-backend/internal/http/handlers"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/skillswap-backend/internal/http/router"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)
	recovery := goroutine.NewRecoveryHandler(logger.Log)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка миграций")
	}

	// Redis необязателен: без него лимиты запросов считаются в памяти процесса.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.WithError(err).Fatal("main: неверный REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Log.WithError(err).Fatal("main: redis недоступен")
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Log.WithError(err).Warn("main: ошибка закрытия redis")
			}
		}()
	}

	limiterStore, err := middleware.NewLimiterStore(redisClient)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось создать хранилище лимитов")
	}

	// Репозитории.
	studentRepo := repository.NewStudentRepository(dbConn)
	adminRepo := repository.NewAdministratorRepository(dbConn)
	listingRepo := repository.NewListingRepository(dbConn)
	chatRepo := repository.NewChatRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	ratingRepo := repository.NewRatingRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	profileRepo := repository.NewProfileRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(logger.Log)
	recovery.SafeGoWithContext(ctx, "ws-hub", hub.Run)

	// Сервисы.
	identity := service.NewIdentity(studentRepo, adminRepo, listingRepo)
	notificationService := service.NewNotificationService(identity, notificationRepo, hub)
	accountService := service.NewAccountService(studentRepo, adminRepo, cfg.VerificationTokenTTL)
	listingService := service.NewListingService(identity, listingRepo)
	chatService := service.NewChatService(identity, chatRepo, notificationService)
	messageService := service.NewMessageService(identity, chatRepo, messageRepo, notificationService)
	ratingService := service.NewRatingService(identity, chatRepo, ratingRepo, notificationService)
	profileService := service.NewProfileService(identity, profileRepo)
	reportService := service.NewReportService(identity, reportRepo)

	var seedHandler *httpHandlers.SeedHandler
	if cfg.Env == "development" {
		seedService := service.NewSeedService(accountService, studentRepo, listingRepo, time.Now().UnixNano())
		seedHandler = httpHandlers.NewSeedHandler(seedService)
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, limiterStore, httpRouter.Handlers{
		Account:      httpHandlers.NewAccountHandler(accountService),
		Listing:      httpHandlers.NewListingHandler(listingService),
		Chat:         httpHandlers.NewChatHandler(chatService, messageService, ratingService),
		Notification: httpHandlers.NewNotificationHandler(notificationService),
		Profile:      httpHandlers.NewProfileHandler(profileService),
		Report:       httpHandlers.NewReportHandler(reportService),
		Health:       httpHandlers.NewHealthHandler(dbConn, redisClient, hub),
		WS:           httpHandlers.NewWSHandler(hub, identity),
		Seed:         seedHandler,
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	recovery.SafeGo("http-shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"port": cfg.HTTPPort,
		"env":  cfg.Env,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Warn("main: ошибка закрытия базы")
	}
}
