// Package brief exports a funnel plan as a flat text document, the growth
// brief users download from the planner.
package brief

import (
	"context"
	"strings"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

// Artifact constants.
const (
	Filename    = "foxytrailz23-growth-brief.txt"
	ContentType = "text/plain; charset=utf-8"
)

// Brief copy.
const (
	Title           = "FoxyTrailz23 Growth Brief"
	NotSpecified    = "Not specified"
	SectionStrategy = "Stage Strategy"
	SectionKPIs     = "KPIs"
)

// Artifact is a downloadable document.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Writer builds brief lines from configs.
type Writer struct {
	catalog *stages.Catalog
	numbers *render.Builder
}

// NewWriter returns a writer over catalog; nil uses stages.Default().
func NewWriter(catalog *stages.Catalog) *Writer {
	if catalog == nil {
		catalog = stages.Default()
	}
	return &Writer{catalog: catalog, numbers: render.NewBuilder(catalog)}
}

// Lines returns the brief for cfg, one element per line.
func (w *Writer) Lines(cfg model.FunnelConfig) []string {
	lines := []string{
		Title,
		"Business: " + orNotSpecified(cfg.Business),
		"Industry: " + orNotSpecified(cfg.Industry),
		"Monthly sessions: " + w.numbers.Count(cfg.Sessions),
		"Target CPA: " + w.numbers.Currency(cfg.CPA),
		"Newsletter: " + yesNo(cfg.Newsletter),
		"",
		SectionStrategy,
	}
	for _, id := range cfg.Stages {
		lines = append(lines, id.Upper()+": "+w.catalog.Description(id))
	}
	lines = append(lines, "", SectionKPIs)
	for _, id := range cfg.Stages {
		lines = append(lines, id.Upper()+": "+w.catalog.KPIs(id))
	}
	return lines
}

// Build joins the brief lines into the downloadable artifact.
func (w *Writer) Build(cfg model.FunnelConfig) Artifact {
	return Artifact{
		Filename:    Filename,
		ContentType: ContentType,
		Body:        []byte(strings.Join(w.Lines(cfg), "\n")),
	}
}

// Lines is NewWriter(nil).Lines(cfg).
func Lines(cfg model.FunnelConfig) []string {
	return NewWriter(nil).Lines(cfg)
}

// Source supplies the config a brief is built from.
type Source interface {
	Load(ctx context.Context) (model.FunnelConfig, bool)
}

// Fallback reads the live form when nothing is persisted.
type Fallback func() model.FunnelConfig

// Exporter builds briefs preferring the persisted plan over live state.
type Exporter struct {
	writer   *Writer
	source   Source
	fallback Fallback
}

// NewExporter binds the persisted source and the live-form fallback. Either
// may be nil.
func NewExporter(writer *Writer, source Source, fallback Fallback) *Exporter {
	if writer == nil {
		writer = NewWriter(nil)
	}
	return &Exporter{writer: writer, source: source, fallback: fallback}
}

// Config resolves the config to export.
func (e *Exporter) Config(ctx context.Context) model.FunnelConfig {
	if e.source != nil {
		if cfg, ok := e.source.Load(ctx); ok {
			return cfg
		}
	}
	if e.fallback != nil {
		return e.fallback()
	}
	return model.FunnelConfig{Stages: stages.DefaultSequence()}
}

// Export builds the brief artifact.
func (e *Exporter) Export(ctx context.Context) Artifact {
	return e.writer.Build(e.Config(ctx))
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotSpecified
	}
	return value
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
