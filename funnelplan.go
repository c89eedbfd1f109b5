// Package funnelplan is the entry point for the FoxyTrailz23 funnel planner:
// it re-exports the plan type and wires stores and planners for callers that
// do not need the individual packages.
package funnelplan

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-funnelplan/internal/config"
	"github.com/goliatone/go-funnelplan/pkg/brief"
	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/planner"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/store"
	"github.com/goliatone/go-funnelplan/pkg/store/sqlite"
)

// FunnelConfig aliases model.FunnelConfig.
type FunnelConfig = model.FunnelConfig

// Artifact aliases brief.Artifact.
type Artifact = brief.Artifact

// NewPlanner exposes the planner constructor from the top-level module.
func NewPlanner(options ...planner.Option) *planner.Planner {
	return planner.New(options...)
}

// Snapshot returns the snapshot lines for cfg using the built-in catalog.
func Snapshot(cfg FunnelConfig) []string {
	return render.Lines(render.NewBuilder(nil).Build(cfg))
}

// Brief builds the downloadable growth brief for cfg.
func Brief(cfg FunnelConfig) Artifact {
	return brief.NewWriter(nil).Build(cfg)
}

// OpenStore opens the store named by driver ("memory" or "sqlite"). The
// returned close function is never nil.
func OpenStore(driver, path string, logger *slog.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch driver {
	case config.StoreMemory:
		return store.NewMemory(), noop, nil
	case config.StoreSQLite:
		db, err := sqlite.Open(path, sqlite.WithLogger(logger))
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("funnelplan: unknown store driver %q", driver)
	}
}
