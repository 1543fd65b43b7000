package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/estate-cli/internal/adapters/api"
	"github.com/bnema/estate-cli/internal/application"
	"github.com/bnema/estate-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPropertiesCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List property listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var snap application.Snapshot[domain.Property]
			err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching properties...", func(ctx context.Context) error {
				var syncErr error
				snap, syncErr = app.properties.Sync(ctx)
				return syncErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap.Items)
			}

			if len(snap.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No properties listed.")
				return nil
			}

			for _, property := range snap.Items {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), propertyLine(app.gateway.BaseURL(), property))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func propertyLine(baseURL string, property domain.Property) string {
	parts := []string{property.Name}
	if property.Location != "" {
		parts = append(parts, property.Location)
	}
	if len(property.Categories) > 0 {
		parts = append(parts, strings.Join(property.Categories, ","))
	}
	if cover := property.CoverImage(); cover != "" {
		parts = append(parts, api.ResolveMediaURL(baseURL, cover))
	}

	return strings.Join(parts, "\t")
}
