package render

import (
	"bytes"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-metabox/pkg/model"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(html.EscapeString(value))
	buf.WriteByte('"')
}

// writeAttributes emits caller attributes verbatim and in order. Names that
// collide with id/name/type/value are not filtered.
func writeAttributes(buf *bytes.Buffer, attrs model.Attributes) {
	for _, attr := range attrs {
		name := strings.TrimSpace(attr.Name)
		if name == "" {
			continue
		}
		writeAttr(buf, name, attr.Value)
	}
}

func writeDescription(buf *bytes.Buffer, raw string) {
	cleaned := SanitizeDescription(raw)
	if cleaned == "" {
		return
	}
	buf.WriteString("\n")
	buf.WriteString(`<p class="description">`)
	buf.WriteString(cleaned)
	buf.WriteString(`</p>`)
}

// SanitizeDescription keeps the inline markup allowed in field descriptions
// (emphasis, code, line breaks and nofollow links) and strips everything else.
func SanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("strong", "em", "b", "i", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
