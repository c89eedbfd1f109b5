// Package prompt fills the funnel form from an interactive terminal session.
// Answers are written into a form.State exactly as typed; coercion happens
// later in the form reader.
package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-funnelplan/pkg/form"
	"github.com/goliatone/go-funnelplan/pkg/stages"
)

// Collector walks the funnel form fields and prompts for each one.
type Collector struct {
	driver  Driver
	catalog *stages.Catalog
}

// NewCollector binds a driver; nil uses the survey driver and a nil catalog
// uses stages.Default().
func NewCollector(driver Driver, catalog *stages.Catalog) *Collector {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	if catalog == nil {
		catalog = stages.Default()
	}
	return &Collector{driver: driver, catalog: catalog}
}

type textPrompt struct {
	field   string
	message string
	help    string
}

var textPrompts = []textPrompt{
	{form.FieldBusiness, "Business name", "Shown as the snapshot heading."},
	{form.FieldIndustry, "Industry", "Leave blank for a general plan."},
	{form.FieldSessions, "Monthly sessions", "Non-numeric answers count as 0."},
	{form.FieldCPA, "Target CPA ($)", "Non-numeric answers count as 0."},
}

// Collect prompts for every field, using the current state as defaults, and
// stores the answers in state. onChange, when set, runs after each answer so
// callers can re-render live.
func (c *Collector) Collect(ctx context.Context, state *form.State, onChange func()) error {
	if state == nil {
		return fmt.Errorf("prompt: form state is nil")
	}
	changed := func() {
		if onChange != nil {
			onChange()
		}
	}

	for _, p := range textPrompts {
		answer, err := c.driver.Input(ctx, InputConfig{
			Message: p.message,
			Default: state.Value(p.field),
			Help:    p.help,
		})
		if err != nil {
			return err
		}
		state.Set(p.field, answer)
		changed()
	}

	ids := c.catalog.IDs()
	options := make([]string, 0, len(ids))
	var defaults []int
	checked := make(map[string]bool)
	for _, value := range state.CheckedValues(form.FieldStage) {
		checked[value] = true
	}
	for i, id := range ids {
		options = append(options, stages.Label(id))
		if checked[string(id)] {
			defaults = append(defaults, i)
		}
	}
	picked, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Funnel stages",
		Options:  options,
		Defaults: defaults,
		Help:     "Select none to plan awareness, consideration and conversion.",
	})
	if err != nil {
		return err
	}
	selected := make(map[int]bool, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(ids) {
			selected[idx] = true
		}
	}
	for i, id := range ids {
		state.SetChecked(form.FieldStage, string(id), selected[i])
	}
	changed()

	subscribe, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: "Send me monthly growth insights",
		Default: state.Checked(form.FieldNewsletter),
	})
	if err != nil {
		return err
	}
	state.SetChecked(form.FieldNewsletter, "", subscribe)
	changed()
	return nil
}

// Confirm asks a yes/no question through the collector's driver.
func (c *Collector) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
}

// Info prints a message through the collector's driver.
func (c *Collector) Info(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, msg)
}
