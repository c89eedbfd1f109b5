package planner

import (
	"log/slog"

	"github.com/goliatone/go-funnelplan/pkg/codec"
	"github.com/goliatone/go-funnelplan/pkg/feedback"
	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/stages"
	"github.com/goliatone/go-funnelplan/pkg/store"
)

// Option configures a Planner.
type Option func(*Planner)

// WithCatalog overrides the stage catalog.
func WithCatalog(catalog *stages.Catalog) Option {
	return func(p *Planner) {
		if catalog != nil {
			p.catalog = catalog
		}
	}
}

// WithStore persists plans in backing under the default key.
func WithStore(backing store.Store) Option {
	return func(p *Planner) {
		if backing != nil {
			p.store = backing
		}
	}
}

// WithCodec supplies a pre-configured codec; it wins over WithStore.
func WithCodec(c *codec.Codec) Option {
	return func(p *Planner) {
		if c != nil {
			p.codec = c
		}
	}
}

// WithRegion sets the display region the snapshot is written into.
func WithRegion(region render.Region) Option {
	return func(p *Planner) {
		p.region = region
	}
}

// WithReader overrides the form reader.
func WithReader(reader *form.Reader) Option {
	return func(p *Planner) {
		if reader != nil {
			p.reader = reader
		}
	}
}

// WithFeedback routes status messages to slot.
func WithFeedback(slot *feedback.Slot) Option {
	return func(p *Planner) {
		if slot != nil {
			p.feedback = slot
		}
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}
