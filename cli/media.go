package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/media"
)

// MediaCmd returns the media command tree.
func MediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Catalog core photos and scanned documents",
	}
	cmd.AddCommand(mediaScanCmd())
	return cmd
}

func mediaScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "Walk a directory and attach files to wells by UWI in the filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := connect()
			if err != nil {
				return err
			}
			fmt.Printf("%s Scanning media under: %s\n", stepMark, args[0])
			stats, err := media.NewScanner(config.DB, log).ScanDirectory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s Media scan complete: %d indexed of %d files, %d already cataloged.\n",
				okMark, stats.Indexed, stats.Files, stats.Duplicate)
			if stats.Unmatched > 0 {
				fmt.Printf("%s %d files had no UWI match and were left uncataloged.\n",
					warnMark, stats.Unmatched)
			}
			return nil
		},
	}
}
