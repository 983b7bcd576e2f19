// Package prompt edits a panel's fields in the terminal. Answers are
// returned as the url.Values a browser would post for the same panel, so
// they flow through panel.Save unchanged.
package prompt

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goliatone/go-metabox/pkg/codec"
	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/render"
)

const checkboxOn = "on"

// Option configures a Collector.
type Option func(*Collector)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// Collector asks one question per field.
type Collector struct {
	driver Driver
}

// New creates a Collector backed by survey unless a driver is supplied.
func New(opts ...Option) *Collector {
	c := &Collector{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver()
	}
	return c
}

// Collect prompts for every field, pre-filling answers from stored, and
// returns the resulting form payload including the panel's submission
// marker. Unchecked checkboxes and empty multi-selects are omitted, as a
// browser would.
func (c *Collector) Collect(ctx context.Context, cfg panel.Config, fields []model.Field, stored map[string]any) (url.Values, error) {
	values := url.Values{}
	values.Set(cfg.SubmittedName(), "1")

	if title := cfg.Title; title != "" {
		if err := c.driver.Heading(ctx, title); err != nil {
			return nil, err
		}
	}

	for _, field := range fields {
		value, present := stored[field.Name]
		if err := c.ask(ctx, values, cfg.TransmittedName(field), field, value, present); err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", field.Name, err)
		}
	}
	return values, nil
}

func (c *Collector) ask(ctx context.Context, values url.Values, name string, field model.Field, value any, present bool) error {
	q := Question{
		Message: field.Label,
		Help:    render.SanitizeDescription(field.Description),
	}
	if q.Message == "" {
		q.Message = field.Name
	}

	switch field.Kind {
	case model.KindText, model.KindTextArea:
		q.Default = current(field, value, present)
		ask := c.driver.Text
		if field.Kind == model.KindTextArea {
			ask = c.driver.TextArea
		}
		answer, err := ask(ctx, q)
		if err != nil {
			return err
		}
		values.Set(name, answer)

	case model.KindCheckbox:
		raw, _ := value.(string)
		q.Checked = present && raw == checkboxOn
		checked, err := c.driver.Checkbox(ctx, q)
		if err != nil {
			return err
		}
		if checked {
			values.Set(name, checkboxOn)
		}

	case model.KindSelect:
		q.Options = field.Options()
		if len(q.Options) == 0 {
			return nil
		}
		q.Selected = selectedKeys(field, value, present)
		if field.Multiple() {
			keys, err := c.driver.ChooseMany(ctx, q)
			if err != nil {
				return err
			}
			for _, key := range keys {
				values.Add(name, key)
			}
			return nil
		}
		key, err := c.driver.Choose(ctx, q)
		if err != nil {
			return err
		}
		values.Set(name, key)
	}
	return nil
}

// selectedKeys lists the option keys matching the stored value. A single
// select with nothing stored preselects its default.
func selectedKeys(field model.Field, value any, present bool) []string {
	if field.Multiple() {
		set, ok := codec.AsSet(value)
		if !ok || !present {
			return nil
		}
		return set
	}
	if present {
		for _, option := range field.Options() {
			if codec.EqualLoose(value, option.Key) {
				return []string{option.Key}
			}
		}
	}
	return []string{field.Default}
}

func current(field model.Field, value any, present bool) string {
	if !present {
		return field.Default
	}
	text, ok := codec.StringForm(value)
	if !ok || text == "" {
		return field.Default
	}
	return text
}
