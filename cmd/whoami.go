package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if !session.Authenticated() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run `estate login` first.")
				return nil
			}

			identity := session.Identity
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nrole: %s\n", identity.Name, identity.Email, identity.Role)

			if expiry, ok := tokenExpiry(session.Token); ok {
				if expiry.Before(app.now()) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "token expired %s — the next call will force a re-login\n", expiry.Format(time.RFC3339))
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "token expires %s\n", expiry.Format(time.RFC3339))
				}
			}

			return nil
		},
	}
}

// tokenExpiry reads the exp claim without verifying the signature. The
// server stays the only authority on validity; a stale token is caught
// by the first authenticated call's 401.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
