// Command bookingctl runs migrations and admin actions against the configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"roombooking/internal/booking"
	"roombooking/internal/store"
	"roombooking/pkg/config"
	"roombooking/pkg/logging"
)

type app struct {
	cfg      config.Config
	logger   zerolog.Logger
	loc      *time.Location
	backend  store.Backend
	bookings *booking.Service
	close    func()
}

func newRootCmd() *cobra.Command {
	a := &app{close: func() {}}

	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Room reservation operator tool",
		Long:          `Apply migrations, manage spaces and moderate reservations from a shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			if a.cfg.LogLevel == "info" {
				a.cfg.LogLevel = "warn"
			}
			a.logger = logging.New(a.cfg)

			loc, err := time.LoadLocation(a.cfg.Booking.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone %q: %w", a.cfg.Booking.Timezone, err)
			}
			a.loc = loc
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.AddCommand(
		newMigrateCmd(a),
		newSpacesCmd(a),
		newReservationsCmd(a),
		newUsageCmd(a),
	)
	return root
}

// open connects the store on first use; migrate does not need it.
func (a *app) open(ctx context.Context) error {
	if a.bookings != nil {
		return nil
	}
	backend, closeFn, err := store.Open(ctx, a.cfg)
	if err != nil {
		return err
	}
	a.backend = backend
	a.close = closeFn
	a.bookings = booking.NewService(backend, booking.Options{
		Location:       a.loc,
		PreventOverlap: a.cfg.Booking.PreventOverlap,
	})
	return nil
}

func (a *app) formatTime(t time.Time) string {
	return t.In(a.loc).Format("2006-01-02 15:04")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
