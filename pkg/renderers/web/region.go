// Package web renders funnel snapshots and the planner page as HTML using
// pongo2 templates. Snapshot fragments are sanitised before they are kept;
// the page embeds the latest fragment next to the form markup.
package web

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

const (
	snapshotTemplate = "templates/snapshot.tmpl"
	pageTemplate     = "templates/page.tmpl"

	// StylesheetAsset is the theme asset key resolved for the page stylesheet.
	StylesheetAsset = "funnelplan.stylesheet"
	// DefaultTitle heads the rendered page.
	DefaultTitle = "FoxyTrailz23 Funnel Planner"
)

// Option configures a Region.
type Option func(*config)

type config struct {
	templateFS fs.FS
	catalog    *stages.Catalog
	theme      *theme.RendererConfig
	title      string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/snapshot.tmpl and templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithCatalog sets the catalog used to label stage checkboxes on the page.
func WithCatalog(catalog *stages.Catalog) Option {
	return func(cfg *config) {
		if catalog != nil {
			cfg.catalog = catalog
		}
	}
}

// WithTheme applies a resolved go-theme configuration: tokens become CSS
// variables and the stylesheet asset is linked from the page.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithTitle overrides the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// Region is an HTML display region.
type Region struct {
	mu       sync.RWMutex
	engine   *engine
	cfg      config
	fragment string
}

var _ render.Display = (*Region)(nil)

// New constructs an HTML region.
func New(options ...Option) (*Region, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		catalog:    stages.Default(),
		title:      DefaultTitle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	eng, err := newEngine(cfg.templateFS, ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("web: configure template engine: %w", err)
	}
	eng.globals(pongo2.Context{"title": cfg.title})

	return &Region{engine: eng, cfg: cfg}, nil
}

// Name reports the display identifier.
func (r *Region) Name() string {
	return "html"
}

// ContentType reports the MIME type of Bytes.
func (r *Region) ContentType() string {
	return "text/html; charset=utf-8"
}

// Replace renders entries into a fresh fragment, discarding the old one.
func (r *Region) Replace(entries []render.Entry) error {
	items := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		items = append(items, map[string]any{
			"kind":  string(entry.Kind),
			"label": entry.Label,
			"value": entry.Value,
			"stage": string(entry.Stage),
		})
	}

	out, err := r.engine.render(snapshotTemplate, pongo2.Context{"entries": items})
	if err != nil {
		return fmt.Errorf("web: render snapshot: %w", err)
	}

	r.mu.Lock()
	r.fragment = sanitizeSnapshot(out)
	r.mu.Unlock()
	return nil
}

// Fragment returns the current snapshot markup.
func (r *Region) Fragment() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fragment
}

// Bytes returns the current snapshot markup.
func (r *Region) Bytes() []byte {
	return []byte(r.Fragment())
}

// PageOptions carries per-render page data.
type PageOptions struct {
	// Feedback is the transient status message, if any.
	Feedback string
	// Now stamps the footer year; zero means time.Now().
	Now time.Time
}

// Page renders the complete planner page: the form with fields mirrored
// from fields, the current snapshot fragment, and the footer.
func (r *Region) Page(fields form.Fields, opts PageOptions) ([]byte, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	data := pongo2.Context{
		"snapshot": r.Fragment(),
		"feedback": opts.Feedback,
		"year":     now.Year(),
		"stages":   r.stageOptions(fields),
	}
	if fields != nil {
		data["business"] = fields.Value(form.FieldBusiness)
		data["industry"] = fields.Value(form.FieldIndustry)
		data["sessions"] = fields.Value(form.FieldSessions)
		data["cpa"] = fields.Value(form.FieldCPA)
		data["newsletter"] = fields.Checked(form.FieldNewsletter)
	}
	if themeCfg := r.cfg.theme; themeCfg != nil {
		data["theme"] = themeCfg.Theme
		data["variant"] = themeCfg.Variant
		data["css_vars"] = cssVars(themeCfg)
		if themeCfg.AssetURL != nil {
			data["stylesheet"] = themeCfg.AssetURL(StylesheetAsset)
		}
	}

	out, err := r.engine.render(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("web: render page: %w", err)
	}
	return []byte(out), nil
}

func (r *Region) stageOptions(fields form.Fields) []map[string]any {
	checked := make(map[string]bool)
	if fields != nil {
		for _, value := range fields.CheckedValues(form.FieldStage) {
			checked[value] = true
		}
	}
	ids := r.cfg.catalog.IDs()
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]any{
			"value":   string(id),
			"label":   stages.Label(id),
			"checked": checked[string(id)],
		})
	}
	return out
}

// cssVars merges explicit CSS variables with tokens exposed as --<token>.
func cssVars(themeCfg *theme.RendererConfig) []map[string]string {
	vars := make(map[string]string, len(themeCfg.Tokens)+len(themeCfg.CSSVars))
	for key, value := range themeCfg.Tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}
	for key, value := range themeCfg.CSSVars {
		vars[key] = value
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, map[string]string{"name": key, "value": vars[key]})
	}
	return out
}
