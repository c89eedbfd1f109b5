// Package text displays funnel snapshots as plain lines, for terminals and
// logs.
package text

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-funnelplan/pkg/render"
)

// Option configures a Region.
type Option func(*Region)

// WithWriter echoes every replacement to w, separated by a rule line.
func WithWriter(w io.Writer) Option {
	return func(r *Region) {
		r.out = w
	}
}

// WithRule overrides the separator written before each echoed snapshot.
func WithRule(rule string) Option {
	return func(r *Region) {
		r.rule = rule
	}
}

// Region keeps the latest snapshot as text.
type Region struct {
	mu      sync.Mutex
	content string
	out     io.Writer
	rule    string
}

var _ render.Display = (*Region)(nil)

// New constructs a text region.
func New(options ...Option) *Region {
	r := &Region{rule: strings.Repeat("-", 40)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the display identifier.
func (r *Region) Name() string {
	return "text"
}

// ContentType reports the MIME type of Bytes.
func (r *Region) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Replace discards the previous content and stores entries as lines.
func (r *Region) Replace(entries []render.Entry) error {
	var b strings.Builder
	for _, line := range render.Lines(entries) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = b.String()

	if r.out == nil {
		return nil
	}
	if r.rule != "" {
		if _, err := fmt.Fprintln(r.out, r.rule); err != nil {
			return fmt.Errorf("text: write rule: %w", err)
		}
	}
	if _, err := io.WriteString(r.out, r.content); err != nil {
		return fmt.Errorf("text: write snapshot: %w", err)
	}
	return nil
}

// String returns the current content.
func (r *Region) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// Bytes returns the current content.
func (r *Region) Bytes() []byte {
	return []byte(r.String())
}
