// Package model defines FunnelConfig, the value produced by the form reader
// and consumed by the snapshot renderer, the codec, and the brief exporter.
// A config is never mutated in place: every read builds a fresh value and
// the With* helpers return modified copies. The JSON tags double as the
// persisted encoding.
package model
