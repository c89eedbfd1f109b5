// Package codec persists the last funnel plan under a fixed key and restores
// it. Persistence is a convenience: write failures are logged and swallowed,
// and anything that cannot be read back is treated as absent.
//
// There is no schema versioning. A stored document written by an older
// FunnelConfig shape decodes into whatever fields still match.
package codec

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/goliatone/go-funnelplan/pkg/model"
	"github.com/goliatone/go-funnelplan/pkg/store"
)

// DefaultKey is the namespaced key the plan is stored under.
const DefaultKey = "foxytrailz23.funnel-config"

var errNotObject = errors.New("codec: stored value is not a JSON object")

// Option configures a Codec.
type Option func(*Codec)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(c *Codec) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			c.key = trimmed
		}
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Codec serialises FunnelConfig values to and from a store.Store.
type Codec struct {
	store  store.Store
	key    string
	logger *slog.Logger
}

// New constructs a codec over backing. A nil store behaves like an
// unavailable one.
func New(backing store.Store, options ...Option) *Codec {
	c := &Codec{
		store:  backing,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Key reports the storage key in use.
func (c *Codec) Key() string {
	return c.key
}

// Encode returns the persisted text form of cfg.
func Encode(cfg model.FunnelConfig) (string, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// Decode parses the persisted text form. Anything but a JSON object is
// rejected.
func Decode(raw string) (model.FunnelConfig, error) {
	if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return model.FunnelConfig{}, errNotObject
	}
	var cfg model.FunnelConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return model.FunnelConfig{}, err
	}
	return cfg, nil
}

// Persist stores cfg. Failures are logged, never returned.
func (c *Codec) Persist(ctx context.Context, cfg model.FunnelConfig) {
	if c.store == nil {
		c.logger.Warn("funnel config not persisted", "key", c.key, "error", store.ErrUnavailable)
		return
	}
	payload, err := Encode(cfg)
	if err != nil {
		c.logger.Warn("funnel config not persisted", "key", c.key, "error", err)
		return
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		c.logger.Warn("funnel config not persisted", "key", c.key, "error", err)
		return
	}
	c.logger.Debug("funnel config persisted", "key", c.key, "bytes", len(payload))
}

// Load restores the persisted config. It reports false when nothing usable
// is stored: unset key, store failure, or malformed content.
func (c *Codec) Load(ctx context.Context) (model.FunnelConfig, bool) {
	if c.store == nil {
		return model.FunnelConfig{}, false
	}
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, store.ErrNotFound) {
		return model.FunnelConfig{}, false
	}
	if err != nil {
		c.logger.Warn("funnel config unavailable", "key", c.key, "error", err)
		return model.FunnelConfig{}, false
	}
	cfg, err := Decode(raw)
	if err != nil {
		c.logger.Warn("stored funnel config is malformed", "key", c.key, "error", err)
		return model.FunnelConfig{}, false
	}
	return cfg, true
}
