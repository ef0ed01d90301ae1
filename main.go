package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellbase/wellbase/cli"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "wellbase",
		Short:   "wellbase - subsurface well data backend",
		Version: version(),
		Long: `wellbase stores wells, wellbores, directional surveys, formation tops,
production and log data, computes trajectory geometry with minimum
curvature, and serves it all over a REST API.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.MediaCmd())
	rootCmd.AddCommand(cli.TrajectoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func version() string {
	if BuildTime == "" {
		return Version
	}
	return fmt.Sprintf("%s (built %s)", Version, BuildTime)
}
