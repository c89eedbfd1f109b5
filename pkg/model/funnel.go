package model

import "github.com/goliatone/go-funnelplan/pkg/stages"

// FunnelConfig is one funnel plan as entered in the form.
type FunnelConfig struct {
	Business   string      `json:"business"`
	Industry   string      `json:"industry"`
	Sessions   float64     `json:"sessions"`
	CPA        float64     `json:"cpa"`
	Stages     []stages.ID `json:"stages"`
	Newsletter bool        `json:"newsletter"`
}

// Clone returns a copy that shares no memory with c.
func (c FunnelConfig) Clone() FunnelConfig {
	out := c
	if c.Stages != nil {
		out.Stages = append([]stages.ID(nil), c.Stages...)
	}
	return out
}

// WithNewsletter returns a copy of c with the newsletter flag set to v.
func (c FunnelConfig) WithNewsletter(v bool) FunnelConfig {
	out := c.Clone()
	out.Newsletter = v
	return out
}

// WithStages returns a copy of c using ids as the stage selection.
func (c FunnelConfig) WithStages(ids ...stages.ID) FunnelConfig {
	out := c.Clone()
	out.Stages = append([]stages.ID(nil), ids...)
	return out
}

// HasStage reports whether id is part of the selection.
func (c FunnelConfig) HasStage(id stages.ID) bool {
	for _, stage := range c.Stages {
		if stage == id {
			return true
		}
	}
	return false
}
