package model

import (
	"fmt"
	"strings"
	"sync"
)

// Registry stores the fields of one panel in insertion order. Names are
// unique; a second field with the same name is rejected rather than shadowing
// the first.
type Registry struct {
	mu     sync.RWMutex
	fields []Field
	index  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// AddText appends a single-line text field. A submitted value equal to def is
// not stored.
func (r *Registry) AddText(name string, attrs Attributes, label, def string) error {
	return r.Add(Field{
		Kind:       KindText,
		Name:       name,
		Label:      label,
		Attributes: attrs,
		Default:    def,
	})
}

// AddTextArea appends a multi-line text field with the same defaulting rules
// as AddText.
func (r *Registry) AddTextArea(name string, attrs Attributes, label, def string) error {
	return r.Add(Field{
		Kind:       KindTextArea,
		Name:       name,
		Label:      label,
		Attributes: attrs,
		Default:    def,
	})
}

// AddSelect appends a select field. The default is the first option key (or
// "" when options is empty). When saveDefault is false, choosing the default
// option removes the stored value instead of writing it.
func (r *Registry) AddSelect(name string, options Options, multiple bool, attrs Attributes, label string, saveDefault bool) error {
	return r.Add(Field{
		Kind:        KindSelect,
		Name:        name,
		Label:       label,
		Attributes:  attrs,
		SaveDefault: saveDefault,
		Select: &SelectSpec{
			Options:  options,
			Multiple: multiple,
		},
	})
}

// AddCheckbox appends a checkbox. Checked boxes submit "on".
func (r *Registry) AddCheckbox(name string, attrs Attributes, label string) error {
	return r.Add(Field{
		Kind:       KindCheckbox,
		Name:       name,
		Label:      label,
		Attributes: attrs,
	})
}

// Add appends a prebuilt field after normalising it for its kind.
func (r *Registry) Add(field Field) error {
	if r == nil {
		return fmt.Errorf("model: registry is nil")
	}
	field, err := normalizeField(field)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, exists := r.index[field.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
	}
	r.index[field.Name] = len(r.fields)
	r.fields = append(r.fields, field)
	return nil
}

// MustAdd panics when Add fails. Useful for init-time wiring.
func (r *Registry) MustAdd(field Field) {
	if err := r.Add(field); err != nil {
		panic(err)
	}
}

// Fields returns a copy of the registered fields in insertion order.
func (r *Registry) Fields() []Field {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Field, len(r.fields))
	for i, field := range r.fields {
		out[i] = cloneField(field)
	}
	return out
}

// Field looks up a field by name.
func (r *Registry) Field(name string) (Field, bool) {
	if r == nil {
		return Field{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[strings.TrimSpace(name)]
	if !ok {
		return Field{}, false
	}
	return cloneField(r.fields[idx]), true
}

// Len reports the number of registered fields.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}

func normalizeField(field Field) (Field, error) {
	field.Name = strings.TrimSpace(field.Name)
	if field.Name == "" {
		return Field{}, ErrFieldNameRequired
	}
	if !field.Kind.Valid() {
		return Field{}, fmt.Errorf("%w: %q (field %q)", ErrUnknownKind, field.Kind, field.Name)
	}

	field = cloneField(field)
	switch field.Kind {
	case KindSelect:
		if field.Select == nil {
			field.Select = &SelectSpec{}
		}
		if field.Select.Options == nil {
			field.Select.Options = Options{}
		}
		field.Default = ""
		if len(field.Select.Options) > 0 {
			field.Default = field.Select.Options[0].Key
		}
	case KindCheckbox:
		field.Select = nil
		field.Default = ""
		field.SaveDefault = false
	default:
		field.Select = nil
	}
	return field, nil
}
