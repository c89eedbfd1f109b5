package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"

	funnelplan "github.com/goliatone/go-funnelplan"
	"github.com/goliatone/go-funnelplan/internal/config"
	"github.com/goliatone/go-funnelplan/pkg/brief"
	"github.com/goliatone/go-funnelplan/pkg/feedback"
	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/planner"
	"github.com/goliatone/go-funnelplan/pkg/prompt"
	"github.com/goliatone/go-funnelplan/pkg/render"
	"github.com/goliatone/go-funnelplan/pkg/renderers/text"
	"github.com/goliatone/go-funnelplan/pkg/renderers/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	storeDriver := flag.String("store", "", "store driver: memory or sqlite (overrides config)")
	storePath := flag.String("db", "", "sqlite database path (overrides config)")
	formState := flag.String("form", "", "encoded form fields, e.g. business=Acme&sessions=1000&stage=retention")
	interactive := flag.Bool("interactive", false, "prompt for each form field")
	submit := flag.Bool("submit", false, "save the plan after reading the form")
	renderer := flag.String("renderer", "text", "display to render: text or html")
	output := flag.String("output", "", "output file (stdout if empty)")
	exportPath := flag.String("export", "", "write the growth brief to this path (a directory uses the default file name)")
	format := flag.String("format", "txt", "brief format: txt or pdf")
	scheduleCall := flag.Bool("schedule-call", false, "request a strategy call")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *storeDriver != "" {
		cfg.Store = *storeDriver
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	backing, closeStore, err := funnelplan.OpenStore(cfg.Store, cfg.StorePath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	registry, htmlRegion, err := newRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to configure renderers: %v", err)
	}
	display, err := registry.Get(*renderer)
	if err != nil {
		log.Fatalf("Unknown renderer %q (available: %v)", *renderer, registry.List())
	}

	slot := feedback.New(
		feedback.WithDelay(cfg.FeedbackDelay),
		feedback.OnChange(func(msg string) {
			if msg != "" {
				logger.Info("feedback", "message", msg)
			}
		}),
	)
	plan := funnelplan.NewPlanner(
		planner.WithStore(backing),
		planner.WithRegion(display),
		planner.WithFeedback(slot),
		planner.WithLogger(logger),
	)

	state := form.NewState(nil)
	if err := plan.Init(ctx, state); err != nil {
		log.Fatalf("Failed to initialise planner: %v", err)
	}

	if *formState != "" {
		values, err := url.ParseQuery(*formState)
		if err != nil {
			log.Fatalf("Invalid -form value: %v", err)
		}
		state.Merge(values)
		if err := plan.Change(ctx); err != nil {
			log.Fatalf("Failed to render snapshot: %v", err)
		}
	}

	if *interactive {
		collector := prompt.NewCollector(nil, nil)
		onChange := func() {
			if err := plan.Change(ctx); err != nil {
				logger.Warn("render snapshot", "error", err)
			}
		}
		if err := collector.Collect(ctx, state, onChange); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				log.Fatalf("Aborted")
			}
			log.Fatalf("Failed to collect answers: %v", err)
		}
		if err := collector.Info(ctx, strings.Join(funnelplan.Snapshot(plan.Current()), "\n")); err != nil {
			logger.Warn("show snapshot", "error", err)
		}
		if !*submit {
			save, err := collector.Confirm(ctx, "Save this plan?", true)
			if err != nil {
				log.Fatalf("Failed to confirm: %v", err)
			}
			*submit = save
		}
	}

	if *submit {
		if err := plan.Submit(ctx); err != nil {
			log.Fatalf("Failed to submit plan: %v", err)
		}
	}
	if *scheduleCall {
		plan.ScheduleCall()
	}

	if *exportPath != "" {
		path, err := exportBrief(ctx, plan, *exportPath, *format)
		if err != nil {
			log.Fatalf("Failed to export brief: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Brief written to %s\n", path)
	}

	out := display.Bytes()
	if display == htmlRegion {
		out, err = htmlRegion.Page(state, web.PageOptions{Feedback: plan.Feedback()})
		if err != nil {
			log.Fatalf("Failed to render page: %v", err)
		}
	} else if msg := plan.Feedback(); msg != "" {
		out = append(out, []byte(msg+"\n")...)
	}

	if *output == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	if display == htmlRegion {
		if err := writeStylesheet(filepath.Dir(*output), cfg.AssetURL(funnelplan.Stylesheet)); err != nil {
			log.Fatalf("Failed to write stylesheet: %v", err)
		}
	}
	fmt.Fprintf(os.Stderr, "Snapshot written to %s\n", *output)
}

func newRegistry(cfg config.Config) (*render.Registry, *web.Region, error) {
	themeCfg := &theme.RendererConfig{
		Theme:   cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  cfg.Tokens,
		AssetURL: func(key string) string {
			if key == web.StylesheetAsset {
				return cfg.AssetURL(funnelplan.Stylesheet)
			}
			return cfg.AssetURL(key)
		},
	}
	htmlRegion, err := web.New(web.WithTheme(themeCfg))
	if err != nil {
		return nil, nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(text.New())
	registry.MustRegister(htmlRegion)
	return registry, htmlRegion, nil
}

func exportBrief(ctx context.Context, plan *planner.Planner, target, format string) (string, error) {
	var (
		artifact brief.Artifact
		err      error
	)
	switch format {
	case "txt", "":
		artifact, err = plan.ExportBrief(ctx)
	case "pdf":
		artifact, err = plan.ExportBriefPDF(ctx)
	default:
		return "", fmt.Errorf("unknown brief format %q", format)
	}
	if err != nil {
		return "", err
	}

	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		target = filepath.Join(target, artifact.Filename)
	}
	if err := os.WriteFile(target, artifact.Body, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

// writeStylesheet copies the embedded stylesheet to where the page links it,
// relative to dir. Absolute URLs are left to the caller to serve.
func writeStylesheet(dir, href string) error {
	if href == "" || strings.Contains(href, "://") {
		return nil
	}
	data, err := fs.ReadFile(funnelplan.AssetsFS(), funnelplan.Stylesheet)
	if err != nil {
		return err
	}
	target := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(href, "/")))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
