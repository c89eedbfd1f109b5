package form_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

func TestReadTrimsAndCoerces(t *testing.T) {
	state := form.NewState(nil)
	state.Set(form.FieldBusiness, "  Acme  ")
	state.Set(form.FieldIndustry, "\tOutdoor gear\n")
	state.Set(form.FieldSessions, " 1000 ")
	state.Set(form.FieldCPA, "42.7")
	state.SetChecked(form.FieldStage, string(stages.Retention), true)
	state.SetChecked(form.FieldStage, string(stages.Awareness), true)
	state.SetChecked(form.FieldNewsletter, "", true)

	got := form.Read(state)
	want := model.FunnelConfig{
		Business: "Acme",
		Industry: "Outdoor gear",
		Sessions: 1000,
		CPA:      42.7,
		// Declaration order, not click order.
		Stages:     []stages.ID{stages.Awareness, stages.Retention},
		Newsletter: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerce(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"   ":     0,
		"abc":     0,
		"12abc":   0,
		"NaN":     0,
		"Inf":     0,
		"-5":      0,
		"1e3":     1000,
		"0.25":    0.25,
		" 7 ":     7,
		"1,000":   0,
		"-0":      0,
		"3.00000": 3,
	}
	for raw, want := range cases {
		if got := form.Coerce(raw); got != want {
			t.Errorf("Coerce(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestEmptySelectionFallsBackToDefaults(t *testing.T) {
	got := form.Read(form.NewState(nil))
	want := []stages.ID{stages.Awareness, stages.Consideration, stages.Conversion}
	if diff := cmp.Diff(want, got.Stages); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
	if got.Sessions != 0 || got.CPA != 0 || got.Business != "" || got.Newsletter {
		t.Fatalf("expected zero values for blank form, got %+v", got)
	}
}

func TestReadNilFieldsAndCustomDefaults(t *testing.T) {
	reader := form.NewReader(form.WithDefaultStages(stages.Retention))
	got := reader.Read(nil)
	if diff := cmp.Diff([]stages.ID{stages.Retention}, got.Stages); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNeverNegative(t *testing.T) {
	inputs := []string{"-1", "-0.5", "-1e300", "1e400", "garbage", "", "5"}
	for _, sessions := range inputs {
		for _, cpa := range inputs {
			state := form.NewState(nil)
			state.Set(form.FieldSessions, sessions)
			state.Set(form.FieldCPA, cpa)
			cfg := form.Read(state)
			if cfg.Sessions < 0 || cfg.CPA < 0 {
				t.Fatalf("negative output for sessions=%q cpa=%q: %+v", sessions, cpa, cfg)
			}
		}
	}
}

type mapFields map[string][]string

func (m mapFields) Has(name string) bool {
	_, ok := m[name]
	return ok
}

func (m mapFields) Value(name string) string {
	if v := m[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (m mapFields) Checked(name string) bool {
	return len(m[name]) > 0
}

func (m mapFields) CheckedValues(name string) []string {
	return m[name]
}

func TestReadAcceptsAnyFields(t *testing.T) {
	fields := mapFields{
		form.FieldStage: {"retention", "retention", "upsell"},
	}
	got := form.Read(fields)
	want := []stages.ID{stages.Retention, stages.Retention, "upsell"}
	if diff := cmp.Diff(want, got.Stages); diff != "" {
		t.Fatalf("stages must be taken as-is (-want +got):\n%s", diff)
	}
}

func TestStateFromValuesAndBack(t *testing.T) {
	values := url.Values{
		form.FieldBusiness:   {"Acme"},
		form.FieldSessions:   {"250"},
		form.FieldStage:      {"conversion", "awareness", "upsell"},
		form.FieldNewsletter: {"on"},
	}
	state := form.StateFromValues(nil, values)
	cfg := form.Read(state)

	want := model.FunnelConfig{
		Business:   "Acme",
		Sessions:   250,
		Stages:     []stages.ID{stages.Awareness, stages.Conversion},
		Newsletter: true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	encoded := state.Values()
	if diff := cmp.Diff([]string{"awareness", "conversion"}, encoded[form.FieldStage]); diff != "" {
		t.Fatalf("encoded stages mismatch (-want +got):\n%s", diff)
	}
	if encoded.Get(form.FieldNewsletter) != "yes" {
		t.Fatalf("expected newsletter encoded, got %v", encoded)
	}

	off := form.StateFromValues(nil, url.Values{form.FieldNewsletter: {"false"}})
	if off.Checked(form.FieldNewsletter) {
		t.Fatalf("expected newsletter=false to stay unchecked")
	}
}

func TestMergeTouchesOnlyPresentKeys(t *testing.T) {
	state := form.NewState(nil)
	state.Apply(model.FunnelConfig{
		Business:   "Saved",
		Industry:   "Retail",
		Sessions:   900,
		Stages:     []stages.ID{stages.Awareness},
		Newsletter: true,
	})

	state.Merge(url.Values{
		form.FieldSessions: {"1200"},
		form.FieldStage:    {"retention"},
	})

	want := model.FunnelConfig{
		Business:   "Saved",
		Industry:   "Retail",
		Sessions:   1200,
		Stages:     []stages.ID{stages.Retention},
		Newsletter: true,
	}
	if diff := cmp.Diff(want, form.Read(state)); diff != "" {
		t.Fatalf("merged config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySeedsFields(t *testing.T) {
	cfg := model.FunnelConfig{
		Business:   "Acme",
		Industry:   "Retail",
		Sessions:   1000,
		CPA:        42.7,
		Stages:     []stages.ID{stages.Retention},
		Newsletter: true,
	}
	state := form.NewState(nil)
	state.SetChecked(form.FieldStage, string(stages.Awareness), true)
	state.Apply(cfg)

	if diff := cmp.Diff(cfg, form.Read(state)); diff != "" {
		t.Fatalf("apply then read mismatch (-want +got):\n%s", diff)
	}
	if state.Value(form.FieldSessions) != "1000" || state.Value(form.FieldCPA) != "42.7" {
		t.Fatalf("numeric fields not formatted plainly: %q %q", state.Value(form.FieldSessions), state.Value(form.FieldCPA))
	}
}

func TestRequiredFieldsDeclared(t *testing.T) {
	state := form.NewState(nil)
	for _, name := range form.RequiredFields() {
		if !state.Has(name) {
			t.Fatalf("expected %s declared", name)
		}
	}
	if state.Has("coupon") {
		t.Fatalf("unexpected field")
	}
	if state.Set("coupon", "x") {
		t.Fatalf("Set must report missing fields")
	}
}
