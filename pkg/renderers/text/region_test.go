package text

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

func TestRegionReplacesContent(t *testing.T) {
	region := New()
	renderer := render.NewRenderer(nil, region)

	cfg := model.FunnelConfig{Business: "Acme", Stages: stages.All()}
	if err := renderer.Render(cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(region.String(), "Retention: ") {
		t.Fatalf("expected retention line, got:\n%s", region.String())
	}

	if err := renderer.Render(cfg.WithStages(stages.Awareness)); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := region.String()
	if strings.Contains(got, "Retention") {
		t.Fatalf("previous content survived:\n%s", got)
	}
	if lines := strings.Count(got, "\n"); lines != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", lines, got)
	}
	if !strings.HasPrefix(got, "Acme Funnel Snapshot\n") {
		t.Fatalf("unexpected heading:\n%s", got)
	}
}

func TestRegionEchoesToWriter(t *testing.T) {
	var buf bytes.Buffer
	region := New(WithWriter(&buf), WithRule("=="))
	if err := region.Replace([]render.Entry{{Kind: render.KindClosing, Value: "bye"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if buf.String() != "==\nbye\n" {
		t.Fatalf("unexpected echo %q", buf.String())
	}
	if string(region.Bytes()) != "bye\n" {
		t.Fatalf("unexpected content %q", region.Bytes())
	}
	if region.Name() != "text" || !strings.HasPrefix(region.ContentType(), "text/plain") {
		t.Fatalf("unexpected identity %s %s", region.Name(), region.ContentType())
	}
}
