package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "estate",
		Short:         "Estate CLI: browse listings, bookings and agent commissions",
		Long:          "estate is a terminal client for the plot booking platform: log in, browse properties, list your bookings, and view the agent commission dashboard.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPropertiesCmd(app),
		newBookingsCmd(app),
		newDashboardCmd(app),
	)

	return rootCmd
}
