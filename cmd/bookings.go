package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/estate-cli/internal/application"
	"github.com/bnema/estate-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBookingsCmd(app *app) *cobra.Command {
	var asJSON bool
	var mineOnly bool

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List bookings visible to the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if !session.Authenticated() {
				return fmt.Errorf("not logged in: run `estate login` first")
			}

			var snap application.Snapshot[domain.Booking]
			err = runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching bookings...", func(ctx context.Context) error {
				var syncErr error
				snap, syncErr = app.bookings.Sync(ctx)
				return syncErr
			})
			if err != nil {
				return err
			}

			items := snap.Items
			if mineOnly {
				items = domain.AgentBookings(items, session.IdentityID())
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No bookings found.")
				return nil
			}

			for _, booking := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%s\n",
					bookingRef(booking), booking.Status, booking.TotalAmount, booking.Plot.PlotNumber)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&mineOnly, "mine", false, "Only bookings where you are the assigned agent")

	return cmd
}

func bookingRef(booking domain.Booking) string {
	if booking.BookingNumber != "" {
		return booking.BookingNumber
	}
	return booking.ID
}
