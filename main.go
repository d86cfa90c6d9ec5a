package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskly/config"
	"taskly/cron"
	"taskly/database"
	"taskly/database/repository"
	"taskly/handlers"
	"taskly/routes"
	"taskly/services/notification"
	"taskly/services/reminder"
	"taskly/services/task"
	"taskly/services/user"
	"taskly/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		zap.S().Debug("main: no .env file loaded")
	}
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	mongoClient, err := database.EnsureConnected(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}

	repos, err := repository.NewMongoRepositories(rootCtx, database.Database())
	if err != nil {
		logger.Fatal("main: failed to initialize repositories", zap.Error(err))
	}

	redisClient, err := utils.InitCache(rootCtx)
	if err != nil {
		logger.Warn("main: stats cache disabled", zap.Error(err))
	}
	var statsCache reminder.StatsCache
	if redisClient != nil {
		statsCache = reminder.NewRedisStatsCache(redisClient)
	}

	// services.
	sender := notification.NewSenderFromConfig(config.AppConfig, logger)
	notificationService, err := notification.NewDefaultNotificationService(
		sender,
		config.AppConfig.FrontendURL,
		config.AppConfig.EmailFromName,
		logger,
	)
	if err != nil {
		logger.Fatal("main: failed to initialize notification service", zap.Error(err))
	}

	settings := config.AppConfig.Reminders()
	scheduler := reminder.NewReminderScheduler(repos.Reminders, settings, logger)
	dispatcher := reminder.NewDispatcher(repos.Reminders, notificationService, settings, logger)
	statsService := reminder.NewStatsService(repos.Reminders, statsCache, config.AppConfig.StatsCacheTTL, logger)
	taskService := task.NewTaskService(repos.Tasks, scheduler, logger)
	userService := user.NewUserService(repos.Users, config.AppConfig.JWTExpiration)

	reminderCron, err := cron.NewReminderCron(dispatcher, settings.CronSpec, logger)
	if err != nil {
		logger.Fatal("main: failed to schedule reminder cron", zap.Error(err))
	}
	reminderCron.Start()

	utils.StartHealthMonitor(rootCtx, 30*time.Second, mongoClient, redisClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := handlers.NewHandlerBundle(
		repos.Users,
		handlers.NewUserHandler(userService),
		handlers.NewTaskHandler(taskService),
		handlers.NewReminderHandler(statsService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	// Let an in-flight dispatch cycle finish before the client goes away.
	select {
	case <-reminderCron.Stop().Done():
	case <-ctx.Done():
		logger.Warn("main: reminder cycle still running at shutdown")
	}
	stopMonitor()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
