package stages

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ID identifies a funnel stage.
type ID string

// Funnel stages, in lifecycle order.
const (
	Awareness     ID = "awareness"
	Consideration ID = "consideration"
	Conversion    ID = "conversion"
	Retention     ID = "retention"
)

// All returns every known stage identifier in lifecycle order.
func All() []ID {
	return []ID{Awareness, Consideration, Conversion, Retention}
}

// DefaultSequence is the selection used when no stage is chosen.
func DefaultSequence() []ID {
	return []ID{Awareness, Consideration, Conversion}
}

// Known reports whether id belongs to the closed stage set.
func Known(id ID) bool {
	switch id {
	case Awareness, Consideration, Conversion, Retention:
		return true
	default:
		return false
	}
}

// Upper returns the identifier in upper case, as used by the brief.
func (id ID) Upper() string {
	return strings.ToUpper(string(id))
}

// Entry carries the copy attached to a stage.
type Entry struct {
	ID          ID
	Description string
	KPIs        string
}

//go:embed catalog.yaml
var embeddedCatalog []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog decoded from the embedded document.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := Parse(embeddedCatalog, "catalog.yaml")
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// Catalog maps stage identifiers to their copy. It is read-only once built
// and safe for concurrent use.
type Catalog struct {
	order   []ID
	entries map[ID]Entry
}

// New builds a catalog from entries. Every stage of the closed set must be
// present exactly once.
func New(entries ...Entry) (*Catalog, error) {
	catalog := &Catalog{entries: make(map[ID]Entry, len(entries))}
	for _, entry := range entries {
		id := ID(strings.ToLower(strings.TrimSpace(string(entry.ID))))
		if !Known(id) {
			return nil, fmt.Errorf("stages: unknown stage %q", entry.ID)
		}
		if _, exists := catalog.entries[id]; exists {
			return nil, fmt.Errorf("stages: duplicate stage %q", id)
		}
		entry.ID = id
		entry.Description = strings.TrimSpace(entry.Description)
		entry.KPIs = strings.TrimSpace(entry.KPIs)
		catalog.entries[id] = entry
		catalog.order = append(catalog.order, id)
	}
	for _, id := range All() {
		if _, ok := catalog.entries[id]; !ok {
			return nil, fmt.Errorf("stages: catalog is missing stage %q", id)
		}
	}
	return catalog, nil
}

type documentFile struct {
	Stages []entryFile `json:"stages" yaml:"stages"`
}

type entryFile struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	KPIs        string `json:"kpis" yaml:"kpis"`
}

// Parse decodes a JSON or YAML catalog document. source only decorates
// error messages.
func Parse(data []byte, source string) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("stages: catalog %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("stages: parse %s: invalid JSON or YAML", source)
		}
	}

	entries := make([]Entry, 0, len(doc.Stages))
	for _, raw := range doc.Stages {
		entries = append(entries, Entry{
			ID:          ID(raw.ID),
			Description: raw.Description,
			KPIs:        raw.KPIs,
		})
	}
	catalog, err := New(entries...)
	if err != nil {
		return nil, fmt.Errorf("stages: %s: %w", source, err)
	}
	return catalog, nil
}

// Lookup returns the copy for id. Identifiers outside the closed set report
// false and a zero Entry.
func (c *Catalog) Lookup(id ID) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	entry, ok := c.entries[id]
	return entry, ok
}

// Description returns the description copy for id, or "" when unknown.
func (c *Catalog) Description(id ID) string {
	entry, _ := c.Lookup(id)
	return entry.Description
}

// KPIs returns the KPI copy for id, or "" when unknown.
func (c *Catalog) KPIs(id ID) string {
	entry, _ := c.Lookup(id)
	return entry.KPIs
}

// IDs returns the catalog's stage identifiers in document order.
func (c *Catalog) IDs() []ID {
	if c == nil {
		return nil
	}
	return append([]ID(nil), c.order...)
}

// Label returns the display label for id ("awareness" becomes "Awareness").
func Label(id ID) string {
	// Casers keep state between calls, so each label gets its own.
	return cases.Title(language.English).String(string(id))
}
