package handlers

import (
	"context"
	"sync"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/engine"
	"github.com/wellbase/wellbase/ingest"
)

// The engine keeps per-wellbore locks, so every handler must go through
// the same instance.
var (
	engOnce sync.Once
	eng     *engine.Engine
)

func trajectoryEngine() *engine.Engine {
	engOnce.Do(func() {
		eng = engine.New(config.DB, config.Log)
	})
	return eng
}

var (
	ingMu sync.Mutex
	ing   *ingest.Ingestor
)

// ingestor builds the shared loader on first use, configured from the
// environment (FIELD_MAPPING, LAKE_BUCKET, LAKE_PATH).
func ingestor(ctx context.Context) (*ingest.Ingestor, error) {
	ingMu.Lock()
	defer ingMu.Unlock()
	if ing != nil {
		return ing, nil
	}
	built, err := ingest.FromEnv(ctx, config.DB, config.Log)
	if err != nil {
		return nil, err
	}
	ing = built
	return ing, nil
}
