package render

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-metabox/pkg/model"
)

// FieldData carries the per-render inputs of one control.
type FieldData struct {
	// InputName is the transmitted name, e.g. "mb_details[color]". Multiple
	// selects append "[]" themselves.
	InputName string
	// Value is the stored value for the field.
	Value any
	// Present is false when nothing is stored for the field.
	Present bool
}

// FieldRenderer writes the control markup for one field into buf.
type FieldRenderer func(buf *bytes.Buffer, field model.Field, data FieldData) error

// Registry maps field kinds to renderers. Register replaces existing entries so
// callers can override the built-in controls.
type Registry struct {
	mu        sync.RWMutex
	renderers map[model.Kind]FieldRenderer
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{renderers: make(map[model.Kind]FieldRenderer)}
}

// NewDefaultRegistry returns a registry with the built-in text, textarea,
// select and checkbox controls.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(model.KindText, renderText)
	registry.MustRegister(model.KindTextArea, renderTextArea)
	registry.MustRegister(model.KindSelect, renderSelect)
	registry.MustRegister(model.KindCheckbox, renderCheckbox)
	return registry
}

// Register associates a renderer with kind.
func (r *Registry) Register(kind model.Kind, renderer FieldRenderer) error {
	if kind == "" {
		return fmt.Errorf("render: field kind is required")
	}
	if renderer == nil {
		return fmt.Errorf("render: renderer for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderers == nil {
		r.renderers = make(map[model.Kind]FieldRenderer)
	}
	r.renderers[kind] = renderer
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(kind model.Kind, renderer FieldRenderer) {
	if err := r.Register(kind, renderer); err != nil {
		panic(err)
	}
}

// Renderer fetches the renderer for kind.
func (r *Registry) Renderer(kind model.Kind) (FieldRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[kind]
	return renderer, ok
}

// Kinds returns the registered kinds sorted by name.
func (r *Registry) Kinds() []model.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]model.Kind, 0, len(r.renderers))
	for kind := range r.renderers {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for kind, renderer := range r.renderers {
		cloned.renderers[kind] = renderer
	}
	return cloned
}

// RenderField dispatches on field.Kind. Kinds without a renderer produce no
// output and no error.
func (r *Registry) RenderField(buf *bytes.Buffer, field model.Field, data FieldData) error {
	renderer, ok := r.Renderer(field.Kind)
	if !ok {
		return nil
	}
	if err := renderer(buf, field, data); err != nil {
		return fmt.Errorf("render: field %q: %w", field.Name, err)
	}
	return nil
}
