package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/smarthealth/booking-api/internal/config"
	"github.com/smarthealth/booking-api/internal/handler"
	appointmentHandler "github.com/smarthealth/booking-api/internal/handler/appointment"
	doctorHandler "github.com/smarthealth/booking-api/internal/handler/doctor"
	labHandler "github.com/smarthealth/booking-api/internal/handler/lab"
	pharmacyHandler "github.com/smarthealth/booking-api/internal/handler/pharmacy"
	slotHandler "github.com/smarthealth/booking-api/internal/handler/slot"
	"github.com/smarthealth/booking-api/internal/middleware"
	"github.com/smarthealth/booking-api/internal/repository/postgres"
	"github.com/smarthealth/booking-api/internal/router"
	appointmentService "github.com/smarthealth/booking-api/internal/service/appointment"
	doctorService "github.com/smarthealth/booking-api/internal/service/doctor"
	labService "github.com/smarthealth/booking-api/internal/service/lab"
	"github.com/smarthealth/booking-api/internal/service/notification"
	pharmacyService "github.com/smarthealth/booking-api/internal/service/pharmacy"
	slotService "github.com/smarthealth/booking-api/internal/service/slot"
)

func main() {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	hospitalRepo := postgres.NewHospitalRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	labRepo := postgres.NewLabRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	svcLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	notificationSvc := notification.NewService(notificationRepo, outboxRepo)
	doctorSvc := doctorService.NewService(doctorRepo, hospitalRepo, cfg.App.DefaultCity)
	slotSvc := slotService.NewService(slotRepo)
	appointmentSvc := appointmentService.NewService(
		appointmentRepo,
		slotRepo,
		doctorRepo,
		hospitalRepo,
		notificationSvc,
		cfg.App.BackendURL,
		&svcLogger,
	)
	labSvc := labService.NewService(labRepo)
	pharmacySvc := pharmacyService.NewService(medicineRepo, prescriptionRepo)

	h := handler.NewHandler(db)

	corsConfig := middleware.DefaultCORSConfig()
	if cfg.App.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.App.FrontendURL}
	}

	r := router.NewRouter(
		doctorHandler.NewHandler(doctorSvc),
		slotHandler.NewHandler(slotSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		labHandler.NewHandler(labSvc),
		pharmacyHandler.NewHandler(pharmacySvc),
		h,
		router.RouterConfig{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RequestTimeout: 30 * time.Second,
			CORSConfig:     corsConfig,
			MetricsPrefix:  "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
