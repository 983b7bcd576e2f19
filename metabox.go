// Package metabox declares custom-field panels for content edit screens,
// renders their controls and persists submitted values as content metadata.
//
// The root package re-exports the pieces most hosts need. Lower level
// building blocks live under pkg/.
package metabox

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/orchestrator"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/render"
)

// Field describes one form control of a panel.
type Field = model.Field

// Registry is the ordered, name-unique field list of a panel.
type Registry = model.Registry

// Config holds a panel's identity and placement.
type Config = panel.Config

// Panel is a mounted panel bound to a registrar and a store.
type Panel = panel.Panel

// SaveRequest carries one host save event.
type SaveRequest = panel.SaveRequest

// NewRegistry returns an empty field registry.
func NewRegistry() *Registry {
	return model.NewRegistry()
}

// NewPanel mounts a panel built in code.
func NewPanel(cfg Config, fields *Registry, registrar panel.Registrar, store panel.Store, opts ...panel.Option) (*Panel, error) {
	return panel.New(cfg, fields, registrar, store, opts...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML loads every definition file in fsys, mounts the panels and
// renders the one named panelID for contentID. It is the simplest entry
// point for callers that just want HTML output.
func RenderHTML(ctx context.Context, fsys fs.FS, panelID, contentID string, options ...orchestrator.Option) ([]byte, error) {
	options = append(options, orchestrator.WithDefinitionsFS(fsys))
	gen := orchestrator.New(options...)
	if _, err := gen.Load(); err != nil {
		return nil, err
	}
	p, ok := gen.Panel(panelID)
	if !ok {
		return nil, fmt.Errorf("metabox: unknown panel %q", panelID)
	}

	var buf bytes.Buffer
	if err := p.Display(ctx, &buf, contentID); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EmbeddedTemplates exposes the built-in panel templates so callers can
// reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
