// File: drivebook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivebook/config"
	"drivebook/cron"
	"drivebook/database"
	bookingRepoPkg "drivebook/database/repository/booking"
	locationRepoPkg "drivebook/database/repository/location"
	partnerRepoPkg "drivebook/database/repository/partner"
	"drivebook/handlers"
	"drivebook/middleware"
	"drivebook/models"
	"drivebook/routes"
	"drivebook/services/availability"
	"drivebook/services/booking"
	"drivebook/services/calendar"
	"drivebook/services/location"
	"drivebook/services/notification"
	"drivebook/services/partner"
	"drivebook/services/search"
	"drivebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	partnerRepo := partnerRepoPkg.NewMongoPartnerRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	locationRepo := locationRepoPkg.NewMongoLocationRepo()
	if mongoRepo, ok := partnerRepo.(*partnerRepoPkg.MongoPartnerRepo); ok {
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Sugar().Warnf("main: failed to ensure partner indexes: %v", err)
		}
	}
	if err := location.SeedLocations(locationRepo); err != nil {
		logger.Sugar().Warnf("main: failed to seed zip locations: %v", err)
	}

	// calendar sources.
	tokenStore := calendar.NewMongoTokenStore()
	stateCodec := calendar.NewStateCodec(config.AppConfig.ConnectStateSecret)
	googleSource := calendar.NewGoogleSource(
		config.AppConfig.GoogleClientID,
		config.AppConfig.GoogleClientSecret,
		config.AppConfig.GoogleRedirectURL,
		tokenStore,
		stateCodec,
	)
	unifiedSource := calendar.NewUnifiedSource(
		config.AppConfig.UnifiedAPIBaseURL,
		config.AppConfig.UnifiedAPIKey,
	)
	sourceFactory := calendar.NewFactory(googleSource, unifiedSource)

	// services.
	locationService := &location.DefaultLocationService{
		Repo:     locationRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: 24 * time.Hour,
	}

	engine := availability.NewEngine(models.SlotTemplate{
		StartHourLocal:      config.AppConfig.SlotStartHour,
		EndHourLocal:        config.AppConfig.SlotEndHour,
		SlotDurationMinutes: config.AppConfig.SlotDurationMinutes,
	})

	searchService := &search.DefaultSearchService{
		PartnerRepo: partnerRepo,
		LocationSvc: locationService,
		Sources:     sourceFactory,
		Engine:      engine,
		Timeout:     time.Duration(config.AppConfig.SearchTimeoutSeconds) * time.Second,
	}

	notificationService := notification.NewAsynqNotificationService(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	cron.InitConfirmationWorker(notification.LogSender{})

	bookingService := &booking.DefaultBookingService{
		PartnerRepo: partnerRepo,
		BookingRepo: bookingRepo,
		Sources:     sourceFactory,
		Notifier:    notificationService,
	}

	partnerService := &partner.DefaultPartnerService{
		Repo:    partnerRepo,
		Sources: sourceFactory,
		Google:  googleSource,
		States:  stateCodec,
	}

	searchHandler := handlers.NewSearchHandler(searchService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	partnerHandler := handlers.NewPartnerHandler(partnerService, logger)
	webhookHandler := handlers.NewWebhookHandler(partnerRepo, &handlers.RedisDeduper{Client: utils.GetCacheClient()}, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		IndexHandler:        searchHandler.IndexHandler,
		SubmitSearchHandler: searchHandler.SubmitSearchHandler,
		SearchHandler:       searchHandler.SearchHandler,

		BookingFormHandler:    bookingHandler.BookingFormHandler,
		ConfirmBookingHandler: bookingHandler.ConfirmBookingHandler,

		JoinHandler:            partnerHandler.JoinHandler,
		ConnectCallbackHandler: partnerHandler.ConnectCallbackHandler,

		WebhookHandler: webhookHandler.Handle,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
