package render

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

// Snapshot copy.
const (
	BusinessPlaceholder = "Your brand"
	HeadingSuffix       = "Funnel Snapshot"
	IndustryPlaceholder = "General"
	ClosingSubscribed   = "Newsletter: you're in. Fresh funnel playbooks will land in your inbox each month."
	ClosingSkipped      = "Newsletter skipped. Opt in anytime to get monthly funnel playbooks."
)

// EntryKind tags the role of an entry within a snapshot.
type EntryKind string

const (
	KindHeading EntryKind = "heading"
	KindSummary EntryKind = "summary"
	KindStage   EntryKind = "stage"
	KindClosing EntryKind = "closing"
)

// Entry is one label/value pair of the display region.
type Entry struct {
	Kind  EntryKind
	Label string
	Value string
	// Stage is set on stage entries only.
	Stage stages.ID
}

// Text flattens the entry into one display line.
func (e Entry) Text() string {
	switch {
	case e.Label == "":
		return e.Value
	case e.Value == "":
		return e.Label
	case e.Kind == KindStage:
		return e.Label + ": " + e.Value
	default:
		return e.Label + " " + e.Value
	}
}

// Lines flattens entries with Entry.Text.
func Lines(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Text())
	}
	return out
}

// Builder projects configs into snapshot entries.
type Builder struct {
	catalog *stages.Catalog
	tag     language.Tag
}

// NewBuilder returns a builder over catalog, formatting numbers for English.
// A nil catalog uses stages.Default().
func NewBuilder(catalog *stages.Catalog) *Builder {
	if catalog == nil {
		catalog = stages.Default()
	}
	return &Builder{catalog: catalog, tag: language.English}
}

// Build returns the snapshot entries for cfg: heading, summary, one entry
// per selected stage in selection order, then the closing line.
func (b *Builder) Build(cfg model.FunnelConfig) []Entry {
	entries := make([]Entry, 0, len(cfg.Stages)+3)

	entries = append(entries, Entry{
		Kind:  KindHeading,
		Label: orPlaceholder(cfg.Business, BusinessPlaceholder),
		Value: HeadingSuffix,
	})
	entries = append(entries, Entry{
		Kind:  KindSummary,
		Value: b.Summary(cfg),
	})

	for _, id := range cfg.Stages {
		// Identifiers outside the catalog render with empty copy.
		entry, _ := b.catalog.Lookup(id)
		entries = append(entries, Entry{
			Kind:  KindStage,
			Label: stages.Label(id),
			Value: stageDetail(entry),
			Stage: id,
		})
	}

	closing := ClosingSkipped
	if cfg.Newsletter {
		closing = ClosingSubscribed
	}
	entries = append(entries, Entry{Kind: KindClosing, Value: closing})
	return entries
}

// Summary renders the industry, sessions and CPA line.
func (b *Builder) Summary(cfg model.FunnelConfig) string {
	return fmt.Sprintf("Industry focus: %s | Monthly sessions: %s | Target CPA: %s",
		orPlaceholder(cfg.Industry, IndustryPlaceholder),
		b.Count(cfg.Sessions),
		b.Currency(cfg.CPA),
	)
}

// Count formats v with thousands grouping ("1,000").
func (b *Builder) Count(v float64) string {
	return message.NewPrinter(b.tag).Sprintf("%v", number.Decimal(v))
}

// Currency formats v rounded to whole dollars ("$43").
func (b *Builder) Currency(v float64) string {
	return "$" + message.NewPrinter(b.tag).Sprintf("%v", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

func stageDetail(entry stages.Entry) string {
	switch {
	case entry.Description == "" && entry.KPIs == "":
		return ""
	case entry.KPIs == "":
		return entry.Description
	default:
		return strings.TrimSpace(entry.Description + " KPIs: " + entry.KPIs)
	}
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
