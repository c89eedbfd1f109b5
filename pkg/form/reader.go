package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

// Reader extracts a FunnelConfig from live form state.
type Reader struct {
	defaults []stages.ID
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithDefaultStages replaces the fallback used for an empty stage selection.
func WithDefaultStages(ids ...stages.ID) ReaderOption {
	return func(r *Reader) {
		if len(ids) > 0 {
			r.defaults = append([]stages.ID(nil), ids...)
		}
	}
}

// NewReader constructs a Reader falling back to stages.DefaultSequence().
func NewReader(options ...ReaderOption) *Reader {
	r := &Reader{defaults: stages.DefaultSequence()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Read maps any field state to a config; it cannot fail. Stage values are
// taken as-is, without checking them against the catalog.
func (r *Reader) Read(fields Fields) model.FunnelConfig {
	if fields == nil {
		return model.FunnelConfig{Stages: append([]stages.ID(nil), r.defaults...)}
	}

	cfg := model.FunnelConfig{
		Business:   strings.TrimSpace(fields.Value(FieldBusiness)),
		Industry:   strings.TrimSpace(fields.Value(FieldIndustry)),
		Sessions:   Coerce(fields.Value(FieldSessions)),
		CPA:        Coerce(fields.Value(FieldCPA)),
		Newsletter: fields.Checked(FieldNewsletter),
	}

	for _, value := range fields.CheckedValues(FieldStage) {
		cfg.Stages = append(cfg.Stages, stages.ID(value))
	}
	if len(cfg.Stages) == 0 {
		cfg.Stages = append([]stages.ID(nil), r.defaults...)
	}
	return cfg
}

// Read is a convenience for NewReader().Read(fields).
func Read(fields Fields) model.FunnelConfig {
	return NewReader().Read(fields)
}

// Coerce parses a numeric field. Blank, unparsable, non-finite and negative
// input all read as 0.
func Coerce(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}
	return value
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
