package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"roombooking/internal/adminauth"
	"roombooking/internal/booking"
	"roombooking/internal/httpapi"
	"roombooking/internal/store"
	"roombooking/pkg/config"
	"roombooking/pkg/db"
	"roombooking/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Booking.Timezone).Msg("load facility timezone")
	}

	driver := cfg.Driver()
	if driver == "postgres" && cfg.MigrationsPath != "" {
		version, err := db.Migrate(cfg.MigrationsPath, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("migrate")
		}
		logger.Info().Uint("version", version).Msg("migrations applied")
	}

	backend, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", driver).Msg("open store")
	}
	defer closeStore()

	auth, err := adminauth.New(cfg.Admin, cfg.IsProduction())
	if err != nil {
		logger.Fatal().Err(err).Msg("admin auth")
	}
	if !auth.Enabled() {
		logger.Warn().Msg("ADMIN_PASSWORD is not set; admin login is disabled")
	}
	if cfg.Admin.SessionSecret == "" {
		logger.Warn().Msg("SESSION_SECRET is not set; admin sessions will not survive a restart")
	}

	bookings := booking.NewService(backend, booking.Options{
		Location:       loc,
		PreventOverlap: cfg.Booking.PreventOverlap,
	})

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:      cfg,
		Logger:   logger,
		Bookings: bookings,
		Auth:     auth,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Str("driver", driver).
			Str("timezone", loc.String()).
			Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http serve")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
