package panel

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/render"
)

// Mode selects how field values map onto storage records.
type Mode string

const (
	// ModeFlat stores each field under its own key.
	ModeFlat Mode = "flat"
	// ModeSerialize stores all fields in one composite record keyed by MetaName.
	ModeSerialize Mode = "serialize"
)

const (
	DefaultContext  = "advanced"
	DefaultPriority = "default"
)

var (
	validContexts   = []string{"normal", "side", "advanced"}
	validPriorities = []string{"high", "core", "default", "low"}
)

// Config describes the panel itself.
type Config struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Screens  []string `json:"screens" yaml:"screens"`
	Prefix   string   `json:"prefix" yaml:"prefix"`
	Context  string   `json:"context" yaml:"context"`
	Priority string   `json:"priority" yaml:"priority"`
	Mode     Mode     `json:"mode" yaml:"mode"`
}

// MetaName is the prefixed panel identifier. It is the form array name and,
// in serialize mode, the composite storage key.
func (c Config) MetaName() string {
	return c.Prefix + c.ID
}

// NonceName is the hidden field carrying the anti-forgery token.
func (c Config) NonceName() string {
	return c.MetaName() + nonceSuffix
}

// SubmittedName is the hidden marker proving the panel was part of the form.
func (c Config) SubmittedName() string {
	return c.MetaName() + submittedSuffix
}

// InputName is the name a field control renders with, e.g. "mb_details[color]".
func (c Config) InputName(field model.Field) string {
	return c.MetaName() + "[" + field.Name + "]"
}

// TransmittedName is the payload key a field's value arrives under. Multiple
// selects post as "mb_details[tags][]".
func (c Config) TransmittedName(field model.Field) string {
	if field.Multiple() {
		return c.InputName(field) + "[]"
	}
	return c.InputName(field)
}

// Normalized trims the ID and fills in defaults the way New does. Callers
// that derive names from a config before mounting should use its result.
func (c Config) Normalized() (Config, error) {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return c, ErrIDRequired
	}
	if c.Title == "" {
		c.Title = c.ID
	}

	c.Context = strings.ToLower(strings.TrimSpace(c.Context))
	if c.Context == "" {
		c.Context = DefaultContext
	}
	if !contains(validContexts, c.Context) {
		return c, fmt.Errorf("%w: %q", ErrInvalidContext, c.Context)
	}

	c.Priority = strings.ToLower(strings.TrimSpace(c.Priority))
	if c.Priority == "" {
		c.Priority = DefaultPriority
	}
	if !contains(validPriorities, c.Priority) {
		return c, fmt.Errorf("%w: %q", ErrInvalidPriority, c.Priority)
	}

	switch c.Mode {
	case "":
		c.Mode = ModeFlat
	case ModeFlat, ModeSerialize:
	default:
		return c, fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}

	screens := make([]string, 0, len(c.Screens))
	for _, screen := range c.Screens {
		if screen = strings.TrimSpace(screen); screen != "" {
			screens = append(screens, screen)
		}
	}
	c.Screens = screens
	return c, nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Option customises a Panel.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	eligibility Eligibility
	issuer      TokenIssuer
	renderer    *render.Panel
}

// WithLogger sets the structured logger. Panels log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEligibility replaces the default autosave/revision gate.
func WithEligibility(gate Eligibility) Option {
	return func(o *options) {
		if gate != nil {
			o.eligibility = gate
		}
	}
}

// WithTokenIssuer renders a nonce hidden field minted by issuer.
func WithTokenIssuer(issuer TokenIssuer) Option {
	return func(o *options) {
		o.issuer = issuer
	}
}

// WithRenderer overrides the panel renderer.
func WithRenderer(renderer *render.Panel) Option {
	return func(o *options) {
		if renderer != nil {
			o.renderer = renderer
		}
	}
}
