package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/engine"
	"github.com/wellbase/wellbase/ingest"
)

// IngestCmd returns the ingest command tree: one subcommand per dataset
// kind, each taking a CSV/XLSX (or LAS) file path.
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Bulk-load well data files",
		Long: `Load operator data files into the database. Column headers are matched
through the field-mapping config (FIELD_MAPPING, built-in defaults when
unset); unmapped columns land in the attributes bag where the target
table carries one.`,
	}
	cmd.AddCommand(ingestHeadersCmd())
	cmd.AddCommand(ingestTopsCmd())
	cmd.AddCommand(ingestProductionCmd())
	cmd.AddCommand(ingestSurveysCmd())
	cmd.AddCommand(ingestLASCmd())
	return cmd
}

// openIngestor connects and builds the env-configured loader.
func openIngestor(ctx context.Context) (*ingest.Ingestor, error) {
	log, err := connect()
	if err != nil {
		return nil, err
	}
	return ingest.FromEnv(ctx, config.DB, log)
}

func ingestHeadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "headers <file>",
		Short: "Load well header records (UWI, name, operator, surface location)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := openIngestor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s Processing header file: %s\n", stepMark, args[0])
			stats, err := in.IngestHeaders(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s Headers loaded: %d of %d rows, %d wellbores ensured.\n",
				okMark, stats.Loaded, stats.Rows, stats.WellboresEnsured)
			if stats.SkippedNoUWI > 0 {
				fmt.Printf("%s %d rows skipped without a UWI.\n", warnMark, stats.SkippedNoUWI)
			}
			return nil
		},
	}
}

func ingestTopsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tops <file>",
		Short: "Load formation top picks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := openIngestor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s Processing tops file: %s\n", stepMark, args[0])
			stats, err := in.IngestTops(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s Tops loaded: %d of %d rows.\n", okMark, stats.Loaded, stats.Rows)
			if stats.RepeatedPicks > 0 {
				fmt.Printf("%s %d repeated sections detected (faults).\n", warnMark, stats.RepeatedPicks)
			}
			if skipped := stats.SkippedBadRow + stats.SkippedNoWell; skipped > 0 {
				fmt.Printf("%s %d rows skipped (%d malformed, %d without a known well).\n",
					warnMark, skipped, stats.SkippedBadRow, stats.SkippedNoWell)
			}
			return nil
		},
	}
}

func ingestProductionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "production <file>",
		Short: "Load daily production volumes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := openIngestor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s Processing daily production: %s\n", stepMark, args[0])
			stats, err := in.IngestProduction(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s Daily production loaded: %d of %d rows.\n", okMark, stats.Loaded, stats.Rows)
			if skipped := stats.SkippedBadRow + stats.SkippedNoWell; skipped > 0 {
				fmt.Printf("%s %d rows skipped (%d malformed, %d without a known well).\n",
					warnMark, skipped, stats.SkippedBadRow, stats.SkippedNoWell)
			}
			return nil
		},
	}
}

func ingestSurveysCmd() *cobra.Command {
	var (
		azimuthRef    string
		azimuthOffset float64
		activate      bool
	)

	cmd := &cobra.Command{
		Use:   "surveys <file>",
		Short: "Load directional survey stations grouped by UWI",
		Long: `Load a station file holding one or more directional surveys keyed by
UWI. Surveys land inactive; --activate flips each loaded survey to the
wellbore's canonical one and recomputes its trajectory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := openIngestor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s Processing survey file: %s\n", stepMark, args[0])
			stats, err := in.IngestSurveys(ctx, args[0], ingest.SurveyOptions{
				AzimuthReference: azimuthRef,
				AzimuthOffset:    azimuthOffset,
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s Surveys loaded: %d surveys, %d stations from %d rows.\n",
				okMark, stats.SurveysCreated, stats.StationsLoaded, stats.Rows)
			if skipped := stats.SkippedNoWell + stats.SkippedInvalid; skipped > 0 {
				fmt.Printf("%s %d rows skipped (%d without a known well, %d invalid).\n",
					warnMark, skipped, stats.SkippedNoWell, stats.SkippedInvalid)
			}
			if !activate {
				return nil
			}

			eng := engine.New(config.DB, config.Log)
			for _, id := range stats.SurveyIDs {
				result, err := eng.ActivateSurvey(ctx, id)
				if err != nil {
					fmt.Printf("%s Survey %s: activation failed: %v\n", failMark, id, err)
					continue
				}
				fmt.Printf("%s Survey %s activated: %d points, %d tops updated.\n",
					okMark, id, len(result.Geometry.Points), result.UpdatedTops)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&azimuthRef, "azimuth-ref", "true", "north reference of the raw azimuths (true|grid|magnetic)")
	cmd.Flags().Float64Var(&azimuthOffset, "azimuth-offset", 0, "correction added to every raw azimuth, in degrees")
	cmd.Flags().BoolVar(&activate, "activate", false, "activate each loaded survey and recompute its trajectory")
	return cmd
}

func ingestLASCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "las <file>",
		Short: "Land a LAS file's curves in the lake and catalog them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := openIngestor(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s Processing LAS: %s\n", stepMark, args[0])
			stats, err := in.IngestLAS(ctx, args[0])
			if err != nil {
				return err
			}
			if stats.Cataloged {
				fmt.Printf("%s Registered %d curves (%d samples) for %s at %s.\n",
					okMark, stats.Channels, stats.Samples, stats.UWI, stats.LakeURI)
			} else {
				fmt.Printf("%s Well %s not found. Curves saved to %s but not cataloged.\n",
					warnMark, stats.UWI, stats.LakeURI)
			}
			return nil
		},
	}
}
