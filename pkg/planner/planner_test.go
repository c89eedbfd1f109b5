package planner_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-funnelplan/pkg/codec"
	"github.com/goliatone/go-funnelplan/pkg/feedback"
	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/planner"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/renderers/text"
	"github.com/goliatone/go-funnelplan/pkg/stages"
	"github.com/goliatone/go-funnelplan/pkg/store"
)

type harness struct {
	planner *planner.Planner
	region  *text.Region
	store   *store.Memory
	state   *form.State
	logs    *bytes.Buffer
}

func newHarness(t *testing.T, options ...store.MemoryOption) *harness {
	t.Helper()
	h := &harness{
		region: text.New(),
		store:  store.NewMemory(options...),
		state:  form.NewState(nil),
		logs:   &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(h.logs, nil))
	slot := feedback.New(feedback.WithScheduler(func(time.Duration, func()) {}))
	h.planner = planner.New(
		planner.WithStore(h.store),
		planner.WithRegion(h.region),
		planner.WithFeedback(slot),
		planner.WithLogger(logger),
	)
	return h
}

func fill(state *form.State) {
	state.Set(form.FieldBusiness, "  Acme Outfitters ")
	state.Set(form.FieldIndustry, "Outdoor retail")
	state.Set(form.FieldSessions, "1000")
	state.Set(form.FieldCPA, "42.7")
	state.SetChecked(form.FieldStage, string(stages.Awareness), false)
	state.SetChecked(form.FieldStage, string(stages.Consideration), false)
	state.SetChecked(form.FieldStage, string(stages.Conversion), true)
	state.SetChecked(form.FieldStage, string(stages.Retention), true)
	state.SetChecked(form.FieldNewsletter, "", true)
}

func TestInitWithoutPersistedPlanRendersDefaults(t *testing.T) {
	h := newHarness(t)
	if err := h.planner.Init(context.Background(), h.state); err != nil {
		t.Fatalf("init: %v", err)
	}

	want := []string{
		"Your brand Funnel Snapshot",
		"Industry focus: General | Monthly sessions: 0 | Target CPA: $0",
		"Awareness: " + stages.Default().Description(stages.Awareness) + " KPIs: " + stages.Default().KPIs(stages.Awareness),
	}
	lines := strings.Split(strings.TrimRight(h.region.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected heading, summary, three stages and closing, got %q", lines)
	}
	if lines[0] != want[0] {
		t.Fatalf("heading: want %q, got %q", want[0], lines[0])
	}
	if lines[1] != want[1] {
		t.Fatalf("summary: want %q, got %q", want[1], lines[1])
	}
	if lines[2] != want[2] {
		t.Fatalf("first stage: want %q, got %q", want[2], lines[2])
	}
	if lines[5] != render.ClosingSkipped {
		t.Fatalf("closing: got %q", lines[5])
	}
	if h.store.Len() != 0 {
		t.Fatalf("init must not persist")
	}
}

func TestInitRestoresPersistedPlanIntoFields(t *testing.T) {
	saved := model.FunnelConfig{
		Business:   "Trailhead",
		Industry:   "SaaS",
		Sessions:   2500,
		CPA:        12,
		Stages:     []stages.ID{stages.Retention},
		Newsletter: true,
	}
	raw, err := codec.Encode(saved)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	h := newHarness(t, store.WithSeed(map[string]string{codec.DefaultKey: raw}))

	if err := h.planner.Init(context.Background(), h.state); err != nil {
		t.Fatalf("init: %v", err)
	}
	if diff := cmp.Diff(saved, h.planner.Current()); diff != "" {
		t.Fatalf("current config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(saved, form.Read(h.state)); diff != "" {
		t.Fatalf("fields not seeded from persisted plan (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(h.region.String(), "Trailhead Funnel Snapshot\n") {
		t.Fatalf("expected restored heading, got %q", h.region.String())
	}
	if !strings.Contains(h.region.String(), render.ClosingSubscribed) {
		t.Fatalf("expected subscribed closing, got %q", h.region.String())
	}
}

func TestInitMalformedPersistedPlanFallsBackToLiveForm(t *testing.T) {
	h := newHarness(t, store.WithSeed(map[string]string{codec.DefaultKey: "{not json"}))
	fill(h.state)

	if err := h.planner.Init(context.Background(), h.state); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := h.planner.Current().Business; got != "Acme Outfitters" {
		t.Fatalf("expected live business, got %q", got)
	}
	if h.logs.Len() == 0 {
		t.Fatalf("expected malformed plan to be logged")
	}
}

type partialFields struct {
	form.Fields
	missing string
}

func (p partialFields) Has(name string) bool {
	if name == p.missing {
		return false
	}
	return p.Fields.Has(name)
}

func TestInitMissingElements(t *testing.T) {
	for _, name := range form.RequiredFields() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			err := h.planner.Init(context.Background(), partialFields{Fields: h.state, missing: name})
			if !errors.Is(err, planner.ErrMissingElement) {
				t.Fatalf("expected ErrMissingElement, got %v", err)
			}
		})
	}

	t.Run("region", func(t *testing.T) {
		p := planner.New()
		if err := p.Init(context.Background(), form.NewState(nil)); !errors.Is(err, planner.ErrMissingElement) {
			t.Fatalf("expected ErrMissingElement, got %v", err)
		}
	})
}

func TestHandlersRequireInit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.planner.Change(ctx); !errors.Is(err, planner.ErrNotInitialized) {
		t.Fatalf("change: %v", err)
	}
	if err := h.planner.Submit(ctx); !errors.Is(err, planner.ErrNotInitialized) {
		t.Fatalf("submit: %v", err)
	}
	if _, err := h.planner.ExportBrief(ctx); !errors.Is(err, planner.ErrNotInitialized) {
		t.Fatalf("export: %v", err)
	}
}

func TestChangeRendersWithoutPersisting(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.planner.Init(ctx, h.state); err != nil {
		t.Fatalf("init: %v", err)
	}
	fill(h.state)
	if err := h.planner.Change(ctx); err != nil {
		t.Fatalf("change: %v", err)
	}

	want := []stages.ID{stages.Conversion, stages.Retention}
	if diff := cmp.Diff(want, h.planner.Current().Stages); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(h.region.String(), "Monthly sessions: 1,000 | Target CPA: $43") {
		t.Fatalf("unexpected summary in %q", h.region.String())
	}
	if h.store.Len() != 0 {
		t.Fatalf("change must not persist")
	}
	if h.planner.Feedback() != "" {
		t.Fatalf("change must not set feedback, got %q", h.planner.Feedback())
	}
}

func TestSubmitPersistsAndAcknowledges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.planner.Init(ctx, h.state); err != nil {
		t.Fatalf("init: %v", err)
	}
	fill(h.state)
	if err := h.planner.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	restored, ok := h.planner.Codec().Load(ctx)
	if !ok {
		t.Fatalf("expected persisted plan")
	}
	if diff := cmp.Diff(form.Read(h.state), restored); diff != "" {
		t.Fatalf("persisted plan mismatch (-want +got):\n%s", diff)
	}
	if h.planner.Feedback() != planner.MessageSaved {
		t.Fatalf("feedback: got %q", h.planner.Feedback())
	}
}

func TestSubmitSurvivesQuotaFailure(t *testing.T) {
	h := newHarness(t, store.WithQuota(4))
	ctx := context.Background()
	if err := h.planner.Init(ctx, h.state); err != nil {
		t.Fatalf("init: %v", err)
	}
	fill(h.state)
	if err := h.planner.Submit(ctx); err != nil {
		t.Fatalf("submit must swallow persistence failures, got %v", err)
	}
	if !strings.HasPrefix(h.region.String(), "Acme Outfitters Funnel Snapshot") {
		t.Fatalf("expected snapshot to render, got %q", h.region.String())
	}
	if !strings.Contains(h.logs.String(), "level=WARN") {
		t.Fatalf("expected warning log, got %q", h.logs.String())
	}
}

func TestExportBriefPrefersPersistedPlan(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.planner.Init(ctx, h.state); err != nil {
		t.Fatalf("init: %v", err)
	}

	artifact, err := h.planner.ExportBrief(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(artifact.Body), "Business: Not specified") {
		t.Fatalf("expected live fallback, got %q", artifact.Body)
	}

	fill(h.state)
	if err := h.planner.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	h.state.Set(form.FieldBusiness, "Unsaved edit")

	artifact, err = h.planner.ExportBrief(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.Filename != "foxytrailz23-growth-brief.txt" {
		t.Fatalf("filename: got %q", artifact.Filename)
	}
	body := string(artifact.Body)
	if !strings.Contains(body, "Business: Acme Outfitters") || strings.Contains(body, "Unsaved edit") {
		t.Fatalf("expected persisted plan in brief, got %q", body)
	}
	if !strings.Contains(body, "RETENTION: ") {
		t.Fatalf("expected retention strategy, got %q", body)
	}
	if h.planner.Feedback() != planner.MessageBriefReady {
		t.Fatalf("feedback: got %q", h.planner.Feedback())
	}
}

func TestExportBriefPDF(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.planner.Init(ctx, h.state); err != nil {
		t.Fatalf("init: %v", err)
	}
	artifact, err := h.planner.ExportBriefPDF(ctx)
	if err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	if !bytes.HasPrefix(artifact.Body, []byte("%PDF")) {
		t.Fatalf("expected PDF body")
	}
}

func TestScheduleCallAcknowledges(t *testing.T) {
	h := newHarness(t)
	h.planner.ScheduleCall()
	if h.planner.Feedback() != planner.MessageCallScheduled {
		t.Fatalf("feedback: got %q", h.planner.Feedback())
	}
	if h.store.Len() != 0 {
		t.Fatalf("schedule call must not persist")
	}
}
