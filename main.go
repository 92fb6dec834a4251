// File: slotwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	appointmentRepo "slotwise/database/repository/appointment"
	rulesRepo "slotwise/database/repository/rules"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/notification"
	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	ruleRepo := rulesRepo.NewMongoRuleRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure appointment indexes: %v", err)
	}

	// services.
	resolver := &scheduling.DefaultRuleResolver{Rules: ruleRepo}
	engine := &scheduling.DefaultSchedulingEngine{
		Appointments:          apptRepo,
		Resolver:              resolver,
		DefaultMaxSuggestions: config.AppConfig.SearchMaxSuggestions,
		DefaultMaxDaysScanned: config.AppConfig.SearchMaxDays,
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer taskClient.Close()

	sessionService := &scheduling.DefaultBookingSessionService{
		Engine:     engine,
		TaskClient: taskClient,
	}

	cron.InitReminderWorker(&notification.LogNotificationService{})
	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

	availabilityHandler := handlers.NewAvailabilityHandler(engine, resolver, logger)
	bookingHandler := handlers.NewBookingHandler(sessionService, logger)

	// Register routes.
	routes.RegisterRoutes(router, availabilityHandler, bookingHandler)

	// Start the HTTP server.
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
