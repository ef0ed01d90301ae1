package cli

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/engine"
	"github.com/wellbase/wellbase/models"
)

// TrajectoryCmd returns the trajectory command tree.
func TrajectoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Compute wellbore trajectories from active surveys",
	}
	cmd.AddCommand(trajectoryComputeCmd())
	return cmd
}

func trajectoryComputeCmd() *cobra.Command {
	var (
		all      bool
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "compute [wellbore-id]",
		Short: "Recompute trajectory geometry and dependent depths",
		Long: `Run minimum curvature over the wellbore's active survey and replace its
stored geometry, map coordinates, and dependent top/log depths in one
transaction. With --all, every wellbore holding an active survey is
recomputed; wellbores are independent, so they run concurrently.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log, err := connect()
			if err != nil {
				return err
			}
			eng := engine.New(config.DB, log)

			if !all {
				if len(args) != 1 {
					return fmt.Errorf("a wellbore id is required unless --all is set")
				}
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid wellbore id %q: %w", args[0], err)
				}
				fmt.Printf("%s Computing trajectory for wellbore %s\n", stepMark, id)
				result, err := eng.Recompute(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("%s Trajectory computed: %d points, TD %.1f MD / %.1f TVD, %d tops updated.\n",
					okMark, len(result.Geometry.Points), result.Geometry.TotalMD,
					result.Geometry.TotalTVD, result.UpdatedTops)
				return nil
			}

			var ids []uuid.UUID
			if err := config.DB.WithContext(ctx).
				Model(&models.DirectionalSurvey{}).
				Where("is_active = ?", true).
				Distinct().
				Pluck("wellbore_id", &ids).Error; err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Printf("%s No wellbores have an active survey, nothing to compute.\n", warnMark)
				return nil
			}
			fmt.Printf("%s Computing trajectories for %d wellbores (%d workers)\n",
				stepMark, len(ids), parallel)

			var (
				mu     sync.Mutex
				failed int
			)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(parallel)
			for _, id := range ids {
				g.Go(func() error {
					result, err := eng.Recompute(gctx, id)

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						// One bad wellbore must not stop the batch.
						failed++
						fmt.Printf("%s Wellbore %s: %v\n", failMark, id, err)
						return nil
					}
					fmt.Printf("%s Wellbore %s: %d points, %d tops updated.\n",
						okMark, id, len(result.Geometry.Points), result.UpdatedTops)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if failed > 0 {
				fmt.Printf("%s Finished with failures: %d of %d wellbores failed.\n",
					warnMark, failed, len(ids))
				return fmt.Errorf("%d of %d wellbores failed", failed, len(ids))
			}
			fmt.Printf("%s All %d wellbores recomputed.\n", okMark, len(ids))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "recompute every wellbore that has an active survey")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "concurrent recomputes when --all is set")
	return cmd
}
