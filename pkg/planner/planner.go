package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-funnelplan/pkg/brief"
	"github.com/goliatone/go-funnelplan/pkg/codec"
	"github.com/goliatone/go-funnelplan/pkg/feedback"
	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/stages"
	"github.com/goliatone/go-funnelplan/pkg/store"
)

// Feedback messages.
const (
	MessageSaved         = "Plan saved. We'll keep it here for your next visit."
	MessageBriefReady    = "Growth brief downloaded."
	MessageCallScheduled = "Thanks! A strategist will reach out within one business day to book your call."
)

var (
	// ErrMissingElement reports that the form or display region lacks an
	// element the widget needs. It is not recoverable.
	ErrMissingElement = errors.New("planner: required element missing")
	// ErrNotInitialized is returned by event handlers called before Init.
	ErrNotInitialized = errors.New("planner: not initialized")
)

// Planner drives one widget instance. Handlers are meant to be called from
// a single event loop.
type Planner struct {
	catalog  *stages.Catalog
	store    store.Store
	codec    *codec.Codec
	region   render.Region
	reader   *form.Reader
	feedback *feedback.Slot
	logger   *slog.Logger

	renderer *render.Renderer
	exporter *brief.Exporter
	fields   form.Fields
	current  model.FunnelConfig
}

// New constructs a planner. Without WithStore or WithCodec plans are kept
// in memory only.
func New(options ...Option) *Planner {
	p := &Planner{
		catalog: stages.Default(),
		reader:  form.NewReader(),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	if p.codec == nil {
		if p.store == nil {
			p.store = store.NewMemory()
		}
		p.codec = codec.New(p.store, codec.WithLogger(p.logger))
	}
	if p.feedback == nil {
		p.feedback = feedback.New()
	}
	p.renderer = render.NewRenderer(p.catalog, p.region)
	p.exporter = brief.NewExporter(brief.NewWriter(p.catalog), p.codec, p.readLive)
	return p
}

// Init checks that the required elements exist, then restores the persisted
// plan into the fields and the region. Without a persisted plan the live
// form is read and rendered instead.
func (p *Planner) Init(ctx context.Context, fields form.Fields) error {
	if p.region == nil {
		return fmt.Errorf("%w: display region", ErrMissingElement)
	}
	if fields == nil {
		return fmt.Errorf("%w: form", ErrMissingElement)
	}
	for _, name := range form.RequiredFields() {
		if !fields.Has(name) {
			return fmt.Errorf("%w: form field %q", ErrMissingElement, name)
		}
	}
	p.fields = fields

	if cfg, ok := p.codec.Load(ctx); ok {
		if seeder, ok := fields.(form.Seeder); ok {
			seeder.Apply(cfg)
		}
		p.logger.Debug("restored persisted funnel plan", "business", cfg.Business, "stages", len(cfg.Stages))
		return p.show(cfg)
	}
	return p.show(p.reader.Read(fields))
}

// Change re-reads the form and refreshes the snapshot.
func (p *Planner) Change(_ context.Context) error {
	if p.fields == nil {
		return ErrNotInitialized
	}
	return p.show(p.reader.Read(p.fields))
}

// Submit re-reads the form, refreshes the snapshot and persists the plan.
func (p *Planner) Submit(ctx context.Context) error {
	if p.fields == nil {
		return ErrNotInitialized
	}
	cfg := p.reader.Read(p.fields)
	if err := p.show(cfg); err != nil {
		return err
	}
	p.codec.Persist(ctx, cfg)
	p.feedback.Set(MessageSaved)
	return nil
}

// ExportBrief builds the text brief from the persisted plan, or from the
// live form when nothing is persisted.
func (p *Planner) ExportBrief(ctx context.Context) (brief.Artifact, error) {
	if p.fields == nil {
		return brief.Artifact{}, ErrNotInitialized
	}
	artifact := p.exporter.Export(ctx)
	p.feedback.Set(MessageBriefReady)
	return artifact, nil
}

// ExportBriefPDF is ExportBrief rendered as a PDF document.
func (p *Planner) ExportBriefPDF(ctx context.Context) (brief.Artifact, error) {
	if p.fields == nil {
		return brief.Artifact{}, ErrNotInitialized
	}
	artifact, err := p.exporter.ExportPDF(ctx)
	if err != nil {
		return brief.Artifact{}, err
	}
	p.feedback.Set(MessageBriefReady)
	return artifact, nil
}

// ScheduleCall acknowledges a call request.
func (p *Planner) ScheduleCall() {
	p.feedback.Set(MessageCallScheduled)
}

// Current returns the config last shown in the region.
func (p *Planner) Current() model.FunnelConfig {
	return p.current.Clone()
}

// Feedback returns the current status message.
func (p *Planner) Feedback() string {
	return p.feedback.Message()
}

// Codec exposes the codec used for persistence.
func (p *Planner) Codec() *codec.Codec {
	return p.codec
}

func (p *Planner) show(cfg model.FunnelConfig) error {
	if err := p.renderer.Render(cfg); err != nil {
		return fmt.Errorf("planner: render snapshot: %w", err)
	}
	p.current = cfg
	return nil
}

func (p *Planner) readLive() model.FunnelConfig {
	return p.reader.Read(p.fields)
}
