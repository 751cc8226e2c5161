package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turbolytics/neoarchive/internal/cmd/archiver"
	"github.com/turbolytics/neoarchive/internal/cmd/fixtures"
)

func NewRootCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "neoarchive",
		Short: "Archives the NASA near-Earth-object feed",
		Long: `neoarchive fetches the NeoWs near-Earth-object feed for a date range,
reduces every object to a flat record grouped by day and writes the
result to a single file.

Flags can generally be set via environment variables, e.g.:

  --start-date => NEOARCHIVE_START_DATE=2019-01-02
  --api-key    => NEOARCHIVE_API_KEY=DEMO_KEY`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(archiver.NewCommand())
	cmd.AddCommand(fixtures.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
