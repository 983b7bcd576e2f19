package render

import (
	"bytes"
	"html"

	"github.com/goliatone/go-metabox/pkg/codec"
	"github.com/goliatone/go-metabox/pkg/model"
)

const checkboxOn = "on"

func renderText(buf *bytes.Buffer, field model.Field, data FieldData) error {
	buf.WriteString(`<input`)
	writeAttr(buf, "id", field.Name)
	writeAttr(buf, "type", "text")
	writeAttr(buf, "name", data.InputName)
	writeAttr(buf, "value", displayValue(field, data))
	writeAttributes(buf, field.Attributes)
	buf.WriteString(`/>`)
	writeDescription(buf, field.Description)
	return nil
}

func renderTextArea(buf *bytes.Buffer, field model.Field, data FieldData) error {
	buf.WriteString(`<textarea`)
	writeAttr(buf, "id", field.Name)
	writeAttr(buf, "name", data.InputName)
	writeAttributes(buf, field.Attributes)
	buf.WriteString(`>`)
	buf.WriteString(html.EscapeString(displayValue(field, data)))
	buf.WriteString(`</textarea>`)
	writeDescription(buf, field.Description)
	return nil
}

func renderSelect(buf *bytes.Buffer, field model.Field, data FieldData) error {
	multiple := field.Multiple()
	name := data.InputName
	if multiple {
		name += "[]"
	}

	buf.WriteString(`<select`)
	writeAttr(buf, "id", field.Name)
	writeAttr(buf, "name", name)
	if multiple {
		writeAttr(buf, "multiple", "multiple")
	}
	writeAttributes(buf, field.Attributes)
	buf.WriteString(">\n")

	selected := optionMatcher(data)
	for _, option := range field.Options() {
		buf.WriteString(`<option`)
		writeAttr(buf, "value", option.Key)
		if selected(option.Key) {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`>`)
		buf.WriteString(html.EscapeString(option.Label))
		buf.WriteString("</option>\n")
	}
	buf.WriteString(`</select>`)
	writeDescription(buf, field.Description)
	return nil
}

func renderCheckbox(buf *bytes.Buffer, field model.Field, data FieldData) error {
	buf.WriteString(`<input`)
	writeAttr(buf, "id", field.Name)
	writeAttr(buf, "type", "checkbox")
	writeAttr(buf, "name", data.InputName)
	if raw, ok := data.Value.(string); ok && data.Present && raw == checkboxOn {
		buf.WriteString(` checked`)
	}
	writeAttributes(buf, field.Attributes)
	buf.WriteString(`/>`)
	writeDescription(buf, field.Description)
	return nil
}

// displayValue picks the stored value when it is present and non-empty and
// falls back to the field default otherwise.
func displayValue(field model.Field, data FieldData) string {
	if !data.Present {
		return field.Default
	}
	text, ok := codec.StringForm(data.Value)
	if !ok || text == "" {
		return field.Default
	}
	return text
}

func optionMatcher(data FieldData) func(key string) bool {
	if !data.Present {
		return func(string) bool { return false }
	}
	if set, ok := codec.AsSet(data.Value); ok {
		members := make(map[string]struct{}, len(set))
		for _, key := range set {
			members[key] = struct{}{}
		}
		return func(key string) bool {
			_, ok := members[key]
			return ok
		}
	}
	return func(key string) bool {
		return codec.EqualLoose(data.Value, key)
	}
}
