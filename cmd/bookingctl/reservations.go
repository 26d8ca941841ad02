package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"roombooking/internal/booking"
)

func newReservationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"res"},
		Short:   "List and moderate reservations",
	}

	var status, spaceID, from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List reservations in facility time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			f, err := a.bookings.ParseFilter(status, spaceID, from, to)
			if err != nil {
				return err
			}
			rs, err := a.bookings.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			if len(rs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reservations found")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSPACE\tSTART\tEND\tSTATUS\tTITLE\tREQUESTER")
			for _, r := range rs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.SpaceID, a.formatTime(r.StartAt), a.formatTime(r.EndAt), r.Status, r.Title, r.Requester)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", booking.StatusAll, "approved, pending or all")
	list.Flags().StringVar(&spaceID, "space", "", "only this space id")
	list.Flags().StringVar(&from, "from", "", "start of window, facility time or RFC 3339")
	list.Flags().StringVar(&to, "to", "", "end of window, facility time or RFC 3339")

	cmd.AddCommand(
		list,
		newTransitionCmd(a, "approve", booking.StatusApproved, "Approve a pending reservation"),
		newTransitionCmd(a, "revert", booking.StatusPending, "Move an approved reservation back to pending"),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a reservation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.open(cmd.Context()); err != nil {
					return err
				}
				if err := a.bookings.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reservation %s deleted\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newTransitionCmd(a *app, use string, to booking.Status, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			r, err := a.bookings.Transition(cmd.Context(), args[0], string(to))
			if err != nil {
				return fmt.Errorf("%s %s: %w", use, args[0], err)
			}
			a.logger.Info().Str("reservation_id", r.ID).Str("status", string(r.Status)).Msg("reservation status set")
			fmt.Fprintf(cmd.OutOrStdout(), "Reservation %s is %s\n", r.ID, r.Status)
			return nil
		},
	}
}
