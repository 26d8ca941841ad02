package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"roombooking/internal/booking"
)

func newSpacesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "List bookable spaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			spaces, err := a.bookings.Spaces(cmd.Context())
			if err != nil {
				return err
			}
			if len(spaces) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No spaces found")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOLOR")
			for _, sp := range spaces {
				fmt.Fprintf(w, "%s\t%s\t%s\n", sp.ID, sp.Name, sp.Color)
			}
			return w.Flush()
		},
	}

	var color string
	add := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Create a space or rename an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			sp := booking.Space{ID: args[0], Name: args[1], Color: color}
			if err := a.backend.UpsertSpace(cmd.Context(), sp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Space %s saved\n", sp.ID)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "", "calendar color, e.g. #429f8e")

	cmd.AddCommand(add)
	return cmd
}
