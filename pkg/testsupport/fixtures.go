package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-funnelplan/pkg/model"
)

// MustLoadConfig reads a JSON plan fixture.
func MustLoadConfig(t *testing.T, path string) model.FunnelConfig {
	t.Helper()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// LoadConfig reads a JSON plan fixture, returning an error for callers
// managing setup outside of *testing.T.
func LoadConfig(path string) (model.FunnelConfig, error) {
	if path == "" {
		return model.FunnelConfig{}, errors.New("testsupport: config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FunnelConfig{}, fmt.Errorf("testsupport: read config: %w", err)
	}
	var out model.FunnelConfig
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FunnelConfig{}, fmt.Errorf("testsupport: unmarshal config: %w", err)
	}
	return out, nil
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden diffs golden text against output line by line, ignoring a
// trailing newline on either side.
func CompareGolden(want, got []byte) string {
	return cmp.Diff(splitLines(want), splitLines(got))
}

func splitLines(data []byte) []string {
	data = bytes.TrimSuffix(data, []byte("\n"))
	lines := bytes.Split(data, []byte("\n"))
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = string(line)
	}
	return out
}
