package schema

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind says how a definition document was obtained.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindInline SourceKind = "inline"
)

// Source names where a document came from so errors can point at it.
type Source struct {
	Kind     SourceKind
	Location string
}

// SourceFromFile names a file on disk.
func SourceFromFile(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// SourceFromFS names a file inside an fs.FS.
func SourceFromFS(name string) Source {
	return Source{Kind: SourceKindFS, Location: name}
}

// SourceInline labels a document built in code or read from stdin. Give the
// label a .toml suffix to have the payload read as TOML.
func SourceInline(label string) Source {
	if label == "" {
		label = "<inline>"
	}
	return Source{Kind: SourceKindInline, Location: label}
}

// Format is the encoding of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Document is a definition payload tagged with its source and format.
type Document struct {
	source Source
	format Format
	raw    []byte
}

// NewDocument copies raw and detects its format: sources named *.toml are
// TOML, payloads opening with "{" are JSON and everything else is YAML.
// Blank payloads are rejected.
func NewDocument(src Source, raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("schema: %s is empty", src.Location)
	}

	format := FormatYAML
	switch {
	case strings.EqualFold(filepath.Ext(src.Location), ".toml"):
		format = FormatTOML
	case trimmed[0] == '{':
		format = FormatJSON
	}
	return Document{source: src, format: format, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics when NewDocument fails.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns where the document came from.
func (d Document) Source() Source {
	return d.source
}

// Format returns the detected encoding.
func (d Document) Format() Format {
	return d.format
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}
