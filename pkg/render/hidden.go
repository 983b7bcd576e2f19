package render

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// HiddenField is a hidden input written ahead of the form table.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden builds a hidden input; value is formatted with fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// NonceField carries a panel's anti-forgery token.
func NonceField(name, token string) HiddenField {
	return Hidden(name, token)
}

// SortedHiddenFields orders fields by name. Unnamed fields are dropped and a
// repeated name keeps its last value. Returns nil when nothing is left.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	var out []HiddenField
	for _, field := range fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			continue
		}
		idx := slices.IndexFunc(out, func(f HiddenField) bool { return f.Name == field.Name })
		if idx >= 0 {
			out[idx].Value = field.Value
			continue
		}
		out = append(out, field)
	}
	slices.SortFunc(out, func(a, b HiddenField) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
