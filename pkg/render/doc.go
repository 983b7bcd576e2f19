// Package render turns field definitions plus their stored values into HTML.
// Field controls are produced by a dispatch table keyed on model.Kind (see
// Registry); the enclosing panel table is a pongo2 template embedded under
// templates/. Renderers are pure: stored values are read by the caller and
// passed in through FieldData.
package render
