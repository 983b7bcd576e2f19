package render

import (
	"bytes"
	"errors"
	"io"
	"io/fs"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/render/pongo"
)

const panelTemplate = "templates/panel.tmpl"

// TemplateRenderer executes a named template with data, copying the output
// to every writer in out. pongo.Engine is the default implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// PanelOption customises the panel renderer.
type PanelOption func(*panelConfig)

type panelConfig struct {
	templateFS       fs.FS
	templatesDir     string
	globals          map[string]any
	templateRenderer TemplateRenderer
	fields           *Registry
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/panel.tmpl.
func WithTemplatesFS(files fs.FS) PanelOption {
	return func(cfg *panelConfig) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the template bundle.
// Files under path/templates/ shadow their bundled counterparts; anything
// missing falls back to the bundle.
func WithTemplatesDir(path string) PanelOption {
	return func(cfg *panelConfig) {
		cfg.templatesDir = path
	}
}

// WithTemplateGlobals exposes data to every panel template render, e.g.
// {{ site }} in an overridden panel.tmpl.
func WithTemplateGlobals(data map[string]any) PanelOption {
	return func(cfg *panelConfig) {
		cfg.globals = data
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer TemplateRenderer) PanelOption {
	return func(cfg *panelConfig) {
		cfg.templateRenderer = renderer
	}
}

// WithFieldRenderers replaces the control dispatch table.
func WithFieldRenderers(registry *Registry) PanelOption {
	return func(cfg *panelConfig) {
		cfg.fields = registry
	}
}

// FieldView pairs a field with the data it renders.
type FieldView struct {
	Field model.Field
	Data  FieldData
}

// PanelView is everything the panel renderer needs for one pass.
type PanelView struct {
	ID     string
	Fields []FieldView
	Hidden []HiddenField
}

// Row is one rendered table row as exposed to the panel template.
type Row struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Control string `json:"control"`
}

// Panel renders a whole meta box: hidden fields followed by the form table.
type Panel struct {
	fields    *Registry
	templates TemplateRenderer
}

// NewPanel constructs a panel renderer backed by the embedded templates.
func NewPanel(options ...PanelOption) (*Panel, error) {
	cfg := panelConfig{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.fields == nil {
		cfg.fields = NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
			pongo.WithGlobalData(cfg.globals),
		)
		if err != nil {
			return nil, err
		}
		templates = engine
	}

	return &Panel{fields: cfg.fields, templates: templates}, nil
}

// Fields exposes the control dispatch table.
func (p *Panel) Fields() *Registry {
	return p.fields
}

// Rows renders every field control in order. A field whose kind has no
// renderer still yields a row with an empty control.
func (p *Panel) Rows(view PanelView) ([]Row, error) {
	rows := make([]Row, 0, len(view.Fields))
	var buf bytes.Buffer
	for _, fv := range view.Fields {
		buf.Reset()
		if err := p.fields.RenderField(&buf, fv.Field, fv.Data); err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			ID:      fv.Field.Name,
			Label:   fv.Field.Label,
			Control: buf.String(),
		})
	}
	return rows, nil
}

// Render writes the panel markup to w.
func (p *Panel) Render(w io.Writer, view PanelView) error {
	if p == nil || p.templates == nil {
		return errors.New("render: panel renderer is nil")
	}
	rows, err := p.Rows(view)
	if err != nil {
		return err
	}

	hidden := SortedHiddenFields(view.Hidden...)
	if hidden == nil {
		hidden = []HiddenField{}
	}

	_, err = p.templates.RenderTemplate(panelTemplate, map[string]any{
		"panel_id": view.ID,
		"rows":     rows,
		"hidden":   hidden,
	}, w)
	return err
}
