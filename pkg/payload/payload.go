// Package payload adapts submitted form data to the panel.Payload accessor.
package payload

import (
	"net/http"
	"net/url"
	"sort"
)

// Form wraps url.Values, the shape net/http produces for form posts.
type Form url.Values

// FromRequest parses r's urlencoded form body.
func FromRequest(r *http.Request) (Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return Form(r.PostForm), nil
}

// Value returns the first value submitted under name.
func (f Form) Value(name string) (string, bool) {
	values, ok := f[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Values returns every value submitted under name.
func (f Form) Values(name string) ([]string, bool) {
	values, ok := f[name]
	if !ok {
		return nil, false
	}
	return append([]string{}, values...), true
}

// Names lists the submitted names in sorted order.
func (f Form) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map is a payload built from scalar values, convenient in tests and when
// values come from a decoded JSON body.
type Map map[string]any

// Value returns the string form of a scalar entry. Slices report their first
// element.
func (m Map) Value(name string) (string, bool) {
	raw, ok := m[name]
	if !ok {
		return "", false
	}
	switch value := raw.(type) {
	case nil:
		return "", true
	case string:
		return value, true
	case []string:
		if len(value) == 0 {
			return "", true
		}
		return value[0], true
	default:
		return Form(url.Values{name: toStrings(raw)}).Value(name)
	}
}

// Values returns a multi-value entry; a scalar becomes a one-element slice.
func (m Map) Values(name string) ([]string, bool) {
	raw, ok := m[name]
	if !ok {
		return nil, false
	}
	return toStrings(raw), true
}

// Names lists the keys in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
