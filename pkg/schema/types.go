package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/panel"
)

// Pair is one entry of an ordered mapping.
type Pair struct {
	Key   string
	Value string
}

// Pairs is a mapping decoded in document order. Anything other than a
// mapping (a list, a scalar, null) decodes to an empty set of pairs.
type Pairs []Pair

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Pairs) UnmarshalYAML(node *yaml.Node) error {
	*p = Pairs{}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("schema: line %d: value for %q must be a scalar", value.Line, key.Value)
		}
		if value.Tag == "!!null" {
			*p = append(*p, Pair{Key: key.Value})
			continue
		}
		*p = append(*p, Pair{Key: key.Value, Value: value.Value})
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler, reading object keys in order.
func (p *Pairs) UnmarshalJSON(data []byte) error {
	*p = Pairs{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		switch v := value.(type) {
		case nil:
			*p = append(*p, Pair{Key: key})
		case string:
			*p = append(*p, Pair{Key: key, Value: v})
		case json.Number:
			*p = append(*p, Pair{Key: key, Value: v.String()})
		case bool:
			*p = append(*p, Pair{Key: key, Value: strconv.FormatBool(v)})
		default:
			return fmt.Errorf("schema: value for %q must be a scalar", key)
		}
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler. TOML tables carry no key order
// once decoded, so a table decodes in sorted key order. An array of
// [key, value] pairs keeps its order; a bare string element uses the string
// as both key and value.
func (p *Pairs) UnmarshalTOML(data any) error {
	*p = Pairs{}
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value, err := tomlScalar(key, v[key])
			if err != nil {
				return err
			}
			*p = append(*p, Pair{Key: key, Value: value})
		}
	case []any:
		for idx, item := range v {
			switch entry := item.(type) {
			case string:
				*p = append(*p, Pair{Key: entry, Value: entry})
			case []any:
				if len(entry) == 0 || len(entry) > 2 {
					return fmt.Errorf("schema: entry %d must be a [key, value] pair", idx)
				}
				key, err := tomlScalar(strconv.Itoa(idx), entry[0])
				if err != nil {
					return err
				}
				pair := Pair{Key: key}
				if len(entry) == 2 {
					if pair.Value, err = tomlScalar(key, entry[1]); err != nil {
						return err
					}
				}
				*p = append(*p, pair)
			default:
				return fmt.Errorf("schema: entry %d must be a string or a [key, value] pair", idx)
			}
		}
	}
	return nil
}

func tomlScalar(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("schema: value for %q must be a scalar", key)
	}
}

func (p Pairs) attributes() model.Attributes {
	out := make(model.Attributes, 0, len(p))
	for _, pair := range p {
		out = append(out, model.Attribute{Name: pair.Key, Value: pair.Value})
	}
	return out
}

func (p Pairs) options() model.Options {
	out := make(model.Options, 0, len(p))
	for _, pair := range p {
		out = append(out, model.Option{Key: pair.Key, Label: pair.Value})
	}
	return out
}

// FieldDef is the document form of a field.
type FieldDef struct {
	Kind        string `json:"kind" yaml:"kind" toml:"kind"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Label       string `json:"label" yaml:"label" toml:"label"`
	Default     string `json:"default" yaml:"default" toml:"default"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Attributes  Pairs  `json:"attributes" yaml:"attributes" toml:"attributes"`
	Options     Pairs  `json:"options" yaml:"options" toml:"options"`
	Multiple    bool   `json:"multiple" yaml:"multiple" toml:"multiple"`
	// SaveDefault defaults to true for selects and false otherwise.
	SaveDefault *bool `json:"save_default" yaml:"save_default" toml:"save_default"`
}

// Field converts the definition into a model field.
func (d FieldDef) Field() (model.Field, error) {
	kind, ok := model.ParseKind(d.Kind)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", model.ErrUnknownKind, d.Kind)
	}

	field := model.Field{
		Kind:        kind,
		Name:        strings.TrimSpace(d.Name),
		Label:       d.Label,
		Attributes:  d.Attributes.attributes(),
		Default:     d.Default,
		Description: d.Description,
	}
	if d.SaveDefault != nil {
		field.SaveDefault = *d.SaveDefault
	}
	if kind == model.KindSelect {
		if d.SaveDefault == nil {
			field.SaveDefault = true
		}
		field.Select = &model.SelectSpec{Options: d.Options.options(), Multiple: d.Multiple}
	}
	return field, nil
}

// PanelDef is one panel in a definition document.
type PanelDef struct {
	panel.Config `yaml:",inline"`
	Fields       []FieldDef `json:"fields" yaml:"fields" toml:"fields"`
}

// Registry builds a field registry in document order.
func (d PanelDef) Registry() (*model.Registry, error) {
	registry := model.NewRegistry()
	for idx, def := range d.Fields {
		field, err := def.Field()
		if err != nil {
			return nil, fmt.Errorf("schema: panel %q field %d: %w", d.ID, idx, err)
		}
		if err := registry.Add(field); err != nil {
			return nil, fmt.Errorf("schema: panel %q field %d: %w", d.ID, idx, err)
		}
	}
	return registry, nil
}

// Definition is a whole document.
type Definition struct {
	Panels []PanelDef `json:"panels" yaml:"panels" toml:"panels"`
}
