// Package render projects a FunnelConfig into the snapshot shown next to
// the form. Build produces the ordered entries; a Region displays them,
// replacing whatever it showed before.
package render

import (
	"errors"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

// Region is the display container the snapshot is written into. Replace
// discards all previous content.
type Region interface {
	Replace(entries []Entry) error
}

// Display is a Region that can report what it currently shows. Displays are
// stored in a Registry under Name().
type Display interface {
	Region
	Name() string
	ContentType() string
	Bytes() []byte
}

// ErrNoRegion is returned when a Renderer has no region to write into.
var ErrNoRegion = errors.New("render: display region is required")

// Renderer builds snapshots and hands them to a region.
type Renderer struct {
	builder *Builder
	region  Region
}

// NewRenderer binds a catalog to a region. A nil catalog uses
// stages.Default().
func NewRenderer(catalog *stages.Catalog, region Region) *Renderer {
	return &Renderer{
		builder: NewBuilder(catalog),
		region:  region,
	}
}

// Render replaces the region content with the snapshot for cfg. Rendering
// the same config twice leaves the region unchanged.
func (r *Renderer) Render(cfg model.FunnelConfig) error {
	if r == nil || r.region == nil {
		return ErrNoRegion
	}
	return r.region.Replace(r.builder.Build(cfg))
}

// Builder exposes the snapshot builder used by r.
func (r *Renderer) Builder() *Builder {
	return r.builder
}
