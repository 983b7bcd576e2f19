package model

import "strings"

// Kind is the closed enumeration of supported field kinds.
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindText, KindTextArea, KindSelect, KindCheckbox}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindTextArea, KindSelect, KindCheckbox:
		return true
	default:
		return false
	}
}

// ParseKind normalises a textual kind ("textArea", " Select ") into a Kind.
// Unknown values return false.
func ParseKind(raw string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", false
	}
	return kind, true
}

// Attribute is a single HTML attribute passed through verbatim to the control.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Attributes keeps attribute order stable across renders.
type Attributes []Attribute

// Attrs builds Attributes from alternating name/value pairs. A trailing name
// without a value is dropped.
func Attrs(pairs ...string) Attributes {
	if len(pairs) < 2 {
		return nil
	}
	out := make(Attributes, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Attribute{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// Get returns the first attribute value stored under name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Option is one selectable entry of a select field.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Options is the ordered key/label list of a select field.
type Options []Option

// Opts builds Options from alternating key/label pairs.
func Opts(pairs ...string) Options {
	if len(pairs) < 2 {
		return nil
	}
	out := make(Options, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Key: pairs[i], Label: pairs[i+1]})
	}
	return out
}

// Keys returns option keys in order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, opt := range o {
		keys = append(keys, opt.Key)
	}
	return keys
}

// SelectSpec carries the data only select fields have.
type SelectSpec struct {
	Options  Options `json:"options"`
	Multiple bool    `json:"multiple"`
}

// Field describes one form control. Fields are values: once added to a
// Registry they are never mutated.
type Field struct {
	Kind        Kind        `json:"kind"`
	Name        string      `json:"name"`
	Label       string      `json:"label,omitempty"`
	Attributes  Attributes  `json:"attributes,omitempty"`
	Default     string      `json:"default"`
	SaveDefault bool        `json:"saveDefault"`
	Description string      `json:"description,omitempty"`
	Select      *SelectSpec `json:"select,omitempty"`
}

// Multiple reports whether the field stores a set of keys.
func (f Field) Multiple() bool {
	return f.Kind == KindSelect && f.Select != nil && f.Select.Multiple
}

// Options returns the select options, or nil for other kinds.
func (f Field) Options() Options {
	if f.Select == nil {
		return nil
	}
	return f.Select.Options
}

func cloneField(f Field) Field {
	out := f
	if len(f.Attributes) > 0 {
		out.Attributes = append(Attributes(nil), f.Attributes...)
	}
	if f.Select != nil {
		spec := SelectSpec{Multiple: f.Select.Multiple}
		if f.Select.Options != nil {
			spec.Options = append(Options{}, f.Select.Options...)
		}
		out.Select = &spec
	}
	return out
}
