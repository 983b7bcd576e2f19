package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded panel template bundle so hosts can extend
// or replace it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
