// File: medbuddy/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"medbuddy/config"
	"medbuddy/cron"
	"medbuddy/database"
	appointmentRepo "medbuddy/database/repository/appointment"
	reservationRepo "medbuddy/database/repository/reservation"
	settingsRepo "medbuddy/database/repository/settings"
	slotRepo "medbuddy/database/repository/slot"
	"medbuddy/handlers"
	"medbuddy/middleware"
	"medbuddy/routes"
	"medbuddy/services/notification"
	"medbuddy/services/reservation"
	"medbuddy/services/scheduler"
	"medbuddy/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	cacheClient := utils.GetCacheClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slots := slotRepo.NewMongoSlotRepo()
	ledger := appointmentRepo.NewMongoAppointmentRepo()
	reservations := reservationRepo.NewMongoReservationRepo()
	settings := settingsRepo.NewMongoSettingsRepo()

	// services.
	reservationService := &reservation.DefaultReservationService{
		Slots:        slots,
		Ledger:       ledger,
		Reservations: reservations,
	}
	notifier := notification.NewAsynqNotificationService()

	expiryScheduler := &scheduler.ExpiryScheduler{
		Ledger:       ledger,
		Reservations: reservations,
		Expiry:       config.ReservationExpiry(),
	}
	reminderScheduler := &scheduler.ReminderScheduler{
		Ledger:    ledger,
		Notifier:  notifier,
		Lookahead: config.ReminderLookahead(),
	}

	sweeps := &cron.SweepRunner{
		Expiry:           expiryScheduler,
		Reminder:         reminderScheduler,
		ExpiryInterval:   config.ExpirySweepInterval(),
		ReminderInterval: config.ReminderSweepInterval(),
	}
	sweeps.Start(context.Background())
	cron.InitReminderWorker(settings)

	bookingHandler := handlers.NewBookingHandler(reservationService, logger)
	adminHandler := handlers.NewAdminHandler(reservationService, ledger, slots, settings, cacheClient, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, adminHandler)

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

	sweeps.Stop()
	if err := notifier.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close reminder queue: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
