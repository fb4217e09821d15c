// File: bookwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookwise/config"
	"bookwise/database"
	appointmentRepo "bookwise/database/repository/appointment"
	clientRepoPkg "bookwise/database/repository/client"
	scheduleRepoPkg "bookwise/database/repository/schedule"
	tenantRepoPkg "bookwise/database/repository/tenant"
	"bookwise/handlers"
	"bookwise/middleware"
	"bookwise/routes"
	"bookwise/services/availability"
	"bookwise/services/booking"
	clientService "bookwise/services/client"
	"bookwise/services/quota"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(routes.CORSMiddleware())

	// repositories.
	tenantRepo := tenantRepoPkg.NewMongoTenantRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()

	// services.
	availabilityService := &availability.DefaultService{
		ScheduleRepo: scheduleRepo,
		ApptRepo:     apptRepo,
		Cache:        utils.GetCacheClient(),
	}
	quotaService := &quota.DefaultService{
		Repo: tenantRepo,
	}
	clientSvc := &clientService.DefaultService{
		Repo:  clientRepo,
		Quota: quotaService,
	}
	bookingService := &booking.DefaultService{
		ScheduleRepo: scheduleRepo,
		ApptRepo:     apptRepo,
		Availability: availabilityService,
	}

	// handlers.
	tenantHandler := handlers.NewTenantHandler(tenantRepo)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	clientHandler := handlers.NewClientHandler(clientSvc, quotaService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService)

	routes.RegisterTenantRoutes(router, tenantHandler, scheduleHandler, availabilityHandler, clientHandler, appointmentHandler)
	routes.RegisterSystemRoutes(router)

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
