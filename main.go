package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simba/config"
	"simba/cron"
	"simba/database"
	"simba/database/repository"
	"simba/handlers"
	"simba/middleware"
	"simba/routes"
	"simba/services/activity"
	"simba/services/analytics"
	"simba/services/auth"
	"simba/services/booking"
	"simba/services/customer"
	"simba/services/dashboard"
	"simba/services/pos"
	"simba/services/storage"
	"simba/services/tour"
	"simba/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	if err := utils.InitCache(); err != nil {
		logger.Warn("main: redis unavailable, receipt numbers fall back to random suffixes", zap.Error(err))
	}

	var images storage.StorageService
	if svc, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: tour image upload disabled", zap.Error(err))
	} else {
		images = svc
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	repos := repository.NewRepositories(database.DB())
	transactor := database.NewMongoTransactor(rootCtx, database.MongoClient)
	if !transactor.Atomic() {
		logger.Warn("main: mongo is standalone, refund writes are not atomic")
	}

	// activity delivery: queue first, direct write when the queue is unreachable.
	queueClient := asynq.NewClient(cron.QueueRedisOpt())
	defer queueClient.Close()
	recorder := &activity.QueueRecorder{
		Client:   queueClient,
		Fallback: &activity.DirectRecorder{Store: repos.Activity},
	}
	cron.InitActivityWorker(rootCtx, repos.Activity)

	// services.
	authn := &auth.JWTAuthenticator{
		Secret:      []byte(config.AppConfig.JWTSecret),
		AdminTTL:    config.AdminTokenTTL(),
		CustomerTTL: config.CustomerTokenTTL(),
	}
	analyticsService := &analytics.DefaultAnalyticsService{Store: repos.Analytics}
	activityService := &activity.DefaultActivityService{
		Store:    repos.Activity,
		Recorder: recorder,
	}
	posService := &pos.DefaultPOSService{
		Transactions: repos.Transactions,
		Bookings:     repos.Bookings,
		Customers:    repos.Customers,
		Tx:           transactor,
		Receipts:     &pos.RedisReceiptNumberer{Client: utils.GetCacheClient()},
		Activity:     recorder,
	}
	tourService := &tour.DefaultTourService{
		Store:     repos.Tours,
		Cache:     tour.NewToursCache(config.ToursCacheTTL(), nil),
		Images:    images,
		Analytics: analyticsService,
		Activity:  recorder,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:  repos.Bookings,
		Tours:     repos.Tours,
		Customers: repos.Customers,
		Analytics: analyticsService,
		Activity:  recorder,
	}
	customerService := &customer.DefaultCustomerService{
		Customers: repos.Customers,
		Bookings:  repos.Bookings,
		Authn:     authn,
	}
	adminAuthService := &auth.AdminAuthService{
		Admins:            repos.Admins,
		Authn:             authn,
		BootstrapEmail:    config.AppConfig.AdminEmail,
		BootstrapPassword: config.AppConfig.AdminPassword,
		Activity:          recorder,
	}
	dashboardService := &dashboard.DefaultDashboardService{
		Bookings:  repos.Bookings,
		Tours:     repos.Tours,
		Customers: repos.Customers,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Authn:     authn,
		POS:       handlers.NewPOSHandler(posService),
		Tours:     handlers.NewTourHandler(tourService),
		Bookings:  handlers.NewBookingHandler(bookingService),
		Customers: handlers.NewCustomerHandler(customerService),
		Admin:     handlers.NewAdminHandler(adminAuthService, dashboardService),
		Activity:  handlers.NewActivityHandler(activityService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestMeta())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.CorsOrigins)
	utils.StartHealthMonitor(rootCtx, utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
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
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
