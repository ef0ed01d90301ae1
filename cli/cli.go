// Package cli implements the wellbase command tree: the API server plus
// the operator commands for migrations, bulk loads, media scans and
// trajectory recomputation.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/wellbase/wellbase/config"
)

// connect builds the process logger and opens the database. Every
// command that touches storage starts here; commands that write through
// the schema run config.Migrations themselves.
func connect() (*zap.Logger, error) {
	log := config.NewLogger()
	if err := config.Connect(log); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return log, nil
}

// Status marks matching the operator scripts this CLI replaced.
var (
	stepMark = color.New(color.FgCyan).Sprint("🔹")
	okMark   = color.New(color.FgGreen).Sprint("✅")
	warnMark = color.New(color.FgYellow).Sprint("⚠️")
	failMark = color.New(color.FgRed).Sprint("❌")
)
