package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"roombooking/internal/booking"
)

func newUsageCmd(a *app) *cobra.Command {
	var spaceID, from, to string
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Summarize bookings and approved hours per space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			f, err := a.bookings.ParseFilter(booking.StatusAll, spaceID, from, to)
			if err != nil {
				return err
			}
			rows, err := a.bookings.Usage(cmd.Context(), f)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SPACE\tNAME\tAPPROVED\tPENDING\tHOURS")
			for _, u := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", u.SpaceID, u.SpaceName, u.Approved, u.Pending, u.ApprovedHours.StringFixed(2))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&spaceID, "space", "", "only this space id")
	cmd.Flags().StringVar(&from, "from", "", "start of window, facility time or RFC 3339")
	cmd.Flags().StringVar(&to, "to", "", "end of window, facility time or RFC 3339")
	return cmd
}
