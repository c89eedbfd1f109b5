package form

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

// Field names used by the funnel form.
const (
	FieldBusiness   = "business"
	FieldIndustry   = "industry"
	FieldSessions   = "sessions"
	FieldCPA        = "cpa"
	FieldStage      = "stage"
	FieldNewsletter = "newsletter"
)

// RequiredFields lists the names a form must expose for the widget to work.
func RequiredFields() []string {
	return []string{FieldBusiness, FieldIndustry, FieldSessions, FieldCPA, FieldStage, FieldNewsletter}
}

// Fields is the query surface of a live form.
type Fields interface {
	// Has reports whether a field with name exists.
	Has(name string) bool
	// Value returns the raw value of the first field named name.
	Value(name string) string
	// Checked reports whether the first checkbox named name is checked.
	Checked(name string) bool
	// CheckedValues returns the values of every checked field named name in
	// declaration order.
	CheckedValues(name string) []string
}

// Seeder accepts a restored config and mirrors it into the fields.
type Seeder interface {
	Apply(cfg model.FunnelConfig)
}

// Kind distinguishes text inputs from checkboxes.
type Kind int

const (
	KindText Kind = iota
	KindCheckbox
)

// Field is one control of the form.
type Field struct {
	Name    string
	Kind    Kind
	Value   string
	Checked bool
}

// State is an ordered collection of form controls.
type State struct {
	fields []Field
}

var (
	_ Fields = (*State)(nil)
	_ Seeder = (*State)(nil)
)

// NewState declares the funnel form controls: one stage checkbox per
// catalog stage, in catalog order. A nil catalog uses stages.Default().
func NewState(catalog *stages.Catalog) *State {
	if catalog == nil {
		catalog = stages.Default()
	}
	s := &State{}
	s.Declare(Field{Name: FieldBusiness, Kind: KindText})
	s.Declare(Field{Name: FieldIndustry, Kind: KindText})
	s.Declare(Field{Name: FieldSessions, Kind: KindText})
	s.Declare(Field{Name: FieldCPA, Kind: KindText})
	for _, id := range catalog.IDs() {
		s.Declare(Field{Name: FieldStage, Kind: KindCheckbox, Value: string(id)})
	}
	s.Declare(Field{Name: FieldNewsletter, Kind: KindCheckbox, Value: "yes"})
	return s
}

// StateFromValues builds a funnel form from an encoded field set, the shape
// a browser submits. A nil catalog uses stages.Default().
func StateFromValues(catalog *stages.Catalog, values url.Values) *State {
	s := NewState(catalog)
	s.Merge(values)
	return s
}

// Merge overlays an encoded field set onto the controls. Only names present
// in values are touched: a stage list replaces the whole stage selection,
// stage values without a declared checkbox are ignored, and a bare
// newsletter key counts as checked.
func (s *State) Merge(values url.Values) {
	for _, name := range []string{FieldBusiness, FieldIndustry, FieldSessions, FieldCPA} {
		if raw, ok := values[name]; ok && len(raw) > 0 {
			s.Set(name, raw[0])
		}
	}
	if picked, ok := values[FieldStage]; ok {
		selected := make(map[string]bool, len(picked))
		for _, value := range picked {
			selected[strings.TrimSpace(value)] = true
		}
		for i := range s.fields {
			field := &s.fields[i]
			if field.Name == FieldStage && field.Kind == KindCheckbox {
				field.Checked = selected[field.Value]
			}
		}
	}
	if raw, ok := values[FieldNewsletter]; ok {
		s.SetChecked(FieldNewsletter, "", len(raw) == 0 || isTruthy(raw[0]))
	}
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

// Declare appends a control.
func (s *State) Declare(field Field) {
	s.fields = append(s.fields, field)
}

// Fields returns a copy of the declared controls.
func (s *State) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Has reports whether a control named name is declared.
func (s *State) Has(name string) bool {
	for _, field := range s.fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// Value returns the value of the first control named name, or "".
func (s *State) Value(name string) string {
	for _, field := range s.fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// Checked reports whether the first checkbox named name is checked.
func (s *State) Checked(name string) bool {
	for _, field := range s.fields {
		if field.Name == name && field.Kind == KindCheckbox {
			return field.Checked
		}
	}
	return false
}

// CheckedValues returns the values of checked controls named name.
func (s *State) CheckedValues(name string) []string {
	var out []string
	for _, field := range s.fields {
		if field.Name == name && field.Kind == KindCheckbox && field.Checked {
			out = append(out, field.Value)
		}
	}
	return out
}

// Set replaces the value of the first text control named name. It reports
// false when no such control exists.
func (s *State) Set(name, value string) bool {
	for i := range s.fields {
		if s.fields[i].Name == name && s.fields[i].Kind == KindText {
			s.fields[i].Value = value
			return true
		}
	}
	return false
}

// SetChecked toggles the checkbox named name whose value matches value. An
// empty value matches the first checkbox with that name.
func (s *State) SetChecked(name, value string, checked bool) bool {
	for i := range s.fields {
		field := &s.fields[i]
		if field.Name != name || field.Kind != KindCheckbox {
			continue
		}
		if value != "" && field.Value != value {
			continue
		}
		field.Checked = checked
		return true
	}
	return false
}

// Apply mirrors cfg into the controls: text values, stage checkboxes and the
// newsletter toggle.
func (s *State) Apply(cfg model.FunnelConfig) {
	s.Set(FieldBusiness, cfg.Business)
	s.Set(FieldIndustry, cfg.Industry)
	s.Set(FieldSessions, formatNumber(cfg.Sessions))
	s.Set(FieldCPA, formatNumber(cfg.CPA))
	for i := range s.fields {
		field := &s.fields[i]
		if field.Name == FieldStage && field.Kind == KindCheckbox {
			field.Checked = cfg.HasStage(stages.ID(field.Value))
		}
	}
	s.SetChecked(FieldNewsletter, "", cfg.Newsletter)
}

// Values encodes the state the way a browser would submit it.
func (s *State) Values() url.Values {
	out := url.Values{}
	for _, field := range s.fields {
		switch field.Kind {
		case KindCheckbox:
			if field.Checked {
				out.Add(field.Name, field.Value)
			}
		default:
			out.Add(field.Name, field.Value)
		}
	}
	return out
}
