package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	dashboardadapter "github.com/bnema/estate-cli/internal/adapters/render/dashboard"
	"github.com/bnema/estate-cli/internal/application"
	"github.com/bnema/estate-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the agent commission dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if !session.Authenticated() {
				return fmt.Errorf("not logged in: run `estate login` first")
			}
			if !session.HasRole(domain.RoleAgent) {
				return fmt.Errorf("%w: dashboard is only available to agents", domain.ErrNotAgent)
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

			if asJSON {
				aggregate := domain.DeriveAgentAggregate(snap.Items, session.IdentityID())
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(aggregate)
			}

			rendered := app.renderDashboard(*session.Identity, snap.Items, dashboardadapter.RenderOptions{Now: app.now()})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the aggregate as JSON")

	return cmd
}
