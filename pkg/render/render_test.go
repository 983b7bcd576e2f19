package render_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/render"
)

func renderOne(t *testing.T, field model.Field, data render.FieldData) string {
	t.Helper()

	var buf bytes.Buffer
	if err := render.NewDefaultRegistry().RenderField(&buf, field, data); err != nil {
		t.Fatalf("render field: %v", err)
	}
	return buf.String()
}

func TestRenderTextValueSelection(t *testing.T) {
	field := model.Field{
		Kind:       model.KindText,
		Name:       "color",
		Default:    "red",
		Attributes: model.Attrs("class", "widefat"),
	}

	tests := []struct {
		name string
		data render.FieldData
		want string
	}{
		{
			name: "absent uses default",
			data: render.FieldData{InputName: "mb_details[color]"},
			want: `<input id="color" type="text" name="mb_details[color]" value="red" class="widefat"/>`,
		},
		{
			name: "stored value wins",
			data: render.FieldData{InputName: "mb_details[color]", Value: "blue", Present: true},
			want: `<input id="color" type="text" name="mb_details[color]" value="blue" class="widefat"/>`,
		},
		{
			name: "empty stored value falls back",
			data: render.FieldData{InputName: "mb_details[color]", Value: "", Present: true},
			want: `<input id="color" type="text" name="mb_details[color]" value="red" class="widefat"/>`,
		},
		{
			name: "value is escaped",
			data: render.FieldData{InputName: "mb_details[color]", Value: `"><script>`, Present: true},
			want: `<input id="color" type="text" name="mb_details[color]" value="&#34;&gt;&lt;script&gt;" class="widefat"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderOne(t, field, tt.data); got != tt.want {
				t.Fatalf("markup mismatch\nwant: %s\n got: %s", tt.want, got)
			}
		})
	}
}

func TestRenderTextAreaEscapesBody(t *testing.T) {
	field := model.Field{Kind: model.KindTextArea, Name: "notes", Attributes: model.Attrs("rows", "4")}
	got := renderOne(t, field, render.FieldData{InputName: "mb[notes]", Value: "a < b & c", Present: true})

	want := `<textarea id="notes" name="mb[notes]" rows="4">a &lt; b &amp; c</textarea>`
	if got != want {
		t.Fatalf("markup mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRenderSelectSingle(t *testing.T) {
	field := model.Field{
		Kind:   model.KindSelect,
		Name:   "size",
		Select: &model.SelectSpec{Options: model.Opts("1", "Small", "2", "Large")},
	}

	got := renderOne(t, field, render.FieldData{InputName: "mb[size]", Value: 2, Present: true})
	want := "<select id=\"size\" name=\"mb[size]\">\n" +
		"<option value=\"1\">Small</option>\n" +
		"<option value=\"2\" selected>Large</option>\n" +
		"</select>"
	if got != want {
		t.Fatalf("markup mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRenderSelectMatching(t *testing.T) {
	field := model.Field{
		Kind:   model.KindSelect,
		Name:   "size",
		Select: &model.SelectSpec{Options: model.Opts("1", "One", "a", "Alpha")},
	}

	tests := []struct {
		name     string
		stored   any
		present  bool
		selected []string
	}{
		{name: "numeric string vs int", stored: 1, present: true, selected: []string{"1"}},
		{name: "float stored as whole number", stored: float64(1), present: true, selected: []string{"1"}},
		{name: "other numeric spelling", stored: "1.0", present: true, selected: nil},
		{name: "exact string", stored: "a", present: true, selected: []string{"a"}},
		{name: "no loose string match", stored: "A", present: true, selected: nil},
		{name: "absent", stored: nil, present: false, selected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderOne(t, field, render.FieldData{InputName: "mb[size]", Value: tt.stored, Present: tt.present})
			var selected []string
			for _, key := range []string{"1", "a"} {
				if strings.Contains(got, `<option value="`+key+`" selected>`) {
					selected = append(selected, key)
				}
			}
			if diff := cmp.Diff(tt.selected, selected); diff != "" {
				t.Fatalf("selected mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderSelectSingleMarksOneOption(t *testing.T) {
	field := model.Field{
		Kind:   model.KindSelect,
		Name:   "qty",
		Select: &model.SelectSpec{Options: model.Opts("1", "One", "01", "Zero one", "1.0", "One point zero")},
	}

	for stored, want := range map[any]string{"1": "1", 1: "1", "01": "01", "1.0": "1.0"} {
		got := renderOne(t, field, render.FieldData{InputName: "mb[qty]", Value: stored, Present: true})
		if n := strings.Count(got, " selected>"); n != 1 {
			t.Fatalf("stored %#v: %d options selected, want 1:\n%s", stored, n, got)
		}
		if !strings.Contains(got, `<option value="`+want+`" selected>`) {
			t.Fatalf("stored %#v: expected %q selected:\n%s", stored, want, got)
		}
	}
}

func TestRenderSelectMultiple(t *testing.T) {
	field := model.Field{
		Kind: model.KindSelect,
		Name: "tags",
		Select: &model.SelectSpec{
			Options:  model.Opts("x", "X", "y", "Y", "z", "Z"),
			Multiple: true,
		},
	}

	got := renderOne(t, field, render.FieldData{InputName: "mb[tags]", Value: []string{"x", "z"}, Present: true})

	if !strings.Contains(got, `name="mb[tags][]" multiple="multiple"`) {
		t.Fatalf("expected multiple name suffix, got %s", got)
	}
	for key, want := range map[string]bool{"x": true, "y": false, "z": true} {
		has := strings.Contains(got, `<option value="`+key+`" selected>`)
		if has != want {
			t.Fatalf("option %q selected=%v, want %v\n%s", key, has, want, got)
		}
	}
}

func TestRenderSelectWithoutOptions(t *testing.T) {
	field := model.Field{Kind: model.KindSelect, Name: "empty"}
	got := renderOne(t, field, render.FieldData{InputName: "mb[empty]"})
	want := "<select id=\"empty\" name=\"mb[empty]\">\n</select>"
	if got != want {
		t.Fatalf("markup mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderCheckbox(t *testing.T) {
	field := model.Field{Kind: model.KindCheckbox, Name: "featured"}

	tests := []struct {
		name    string
		stored  any
		present bool
		checked bool
	}{
		{name: "on", stored: "on", present: true, checked: true},
		{name: "absent", present: false},
		{name: "one", stored: "1", present: true},
		{name: "bool true", stored: true, present: true},
		{name: "upper", stored: "ON", present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderOne(t, field, render.FieldData{InputName: "mb[featured]", Value: tt.stored, Present: tt.present})
			if has := strings.Contains(got, " checked"); has != tt.checked {
				t.Fatalf("checked=%v, want %v: %s", has, tt.checked, got)
			}
			if !strings.HasPrefix(got, `<input id="featured" type="checkbox" name="mb[featured]"`) {
				t.Fatalf("unexpected markup %s", got)
			}
		})
	}
}

func TestRenderAttributesPreserveOrder(t *testing.T) {
	field := model.Field{
		Kind:       model.KindText,
		Name:       "a",
		Attributes: model.Attrs("z", "1", "a", "2", "m", "3"),
	}
	got := renderOne(t, field, render.FieldData{InputName: "n"})
	if !strings.Contains(got, ` z="1" a="2" m="3"`) {
		t.Fatalf("attributes out of order: %s", got)
	}
}

func TestRenderUnknownKindIsNoop(t *testing.T) {
	var buf bytes.Buffer
	err := render.NewDefaultRegistry().RenderField(&buf, model.Field{Kind: "radio", Name: "r"}, render.FieldData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestRegistryOverrideAndErrors(t *testing.T) {
	registry := render.NewDefaultRegistry().Clone()
	boom := errors.New("boom")
	registry.MustRegister(model.KindText, func(buf *bytes.Buffer, field model.Field, data render.FieldData) error {
		return boom
	})

	var buf bytes.Buffer
	err := registry.RenderField(&buf, model.Field{Kind: model.KindText, Name: "t"}, render.FieldData{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}

	if err := registry.Register("", nil); err == nil {
		t.Fatalf("expected error for empty kind")
	}

	want := []model.Kind{model.KindCheckbox, model.KindSelect, model.KindText, model.KindTextArea}
	if diff := cmp.Diff(want, registry.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDescriptionSanitized(t *testing.T) {
	field := model.Field{
		Kind:        model.KindText,
		Name:        "d",
		Description: `<script>alert(1)</script><em>Shown</em> on the <a href="https://example.com">site</a>`,
	}
	got := renderOne(t, field, render.FieldData{InputName: "n"})

	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("script survived sanitizing: %s", got)
	}
	if !strings.Contains(got, `<p class="description"><em>Shown</em> on the <a href="https://example.com" rel="nofollow">site</a></p>`) {
		t.Fatalf("unexpected description: %s", got)
	}
}

func TestPanelRender(t *testing.T) {
	panel, err := render.NewPanel()
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	view := render.PanelView{
		ID: "mb_details",
		Fields: []render.FieldView{
			{
				Field: model.Field{Kind: model.KindText, Name: "color", Label: "Color <b>", Default: "red"},
				Data:  render.FieldData{InputName: "mb_details[color]"},
			},
			{
				Field: model.Field{Kind: model.KindCheckbox, Name: "featured"},
				Data:  render.FieldData{InputName: "mb_details[featured]", Value: "on", Present: true},
			},
		},
		Hidden: []render.HiddenField{
			render.Hidden("mb_details_submitted", 1),
			render.NonceField("mb_details_nonce", "tok"),
		},
	}

	var out bytes.Buffer
	if err := panel.Render(&out, view); err != nil {
		t.Fatalf("render panel: %v", err)
	}
	html := out.String()

	for _, want := range []string{
		`<input type="hidden" name="mb_details_nonce" value="tok"/>`,
		`<input type="hidden" name="mb_details_submitted" value="1"/>`,
		`<table class="form-table" data-panel="mb_details">`,
		`<th scope="row"><label for="color">Color &lt;b&gt;</label></th>`,
		`<td><input id="color" type="text" name="mb_details[color]" value="red"/></td>`,
		`<td><input id="featured" type="checkbox" name="mb_details[featured]" checked/></td>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}

	if strings.Count(html, "<th") != 1 {
		t.Fatalf("expected label cell only for labelled field:\n%s", html)
	}
	if strings.Index(html, "mb_details_nonce") > strings.Index(html, "mb_details_submitted") {
		t.Fatalf("hidden fields not sorted:\n%s", html)
	}
}

func TestPanelRowsKeepUnknownKinds(t *testing.T) {
	panel, err := render.NewPanel()
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	rows, err := panel.Rows(render.PanelView{Fields: []render.FieldView{
		{Field: model.Field{Kind: "radio", Name: "r", Label: "R"}},
	}})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := []render.Row{{ID: "r", Label: "R"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

type recordingTemplates struct {
	name string
	data any
}

func (r *recordingTemplates) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	r.name, r.data = name, data
	for _, w := range out {
		io.WriteString(w, "ok")
	}
	return "ok", nil
}

func TestPanelCustomTemplateRenderer(t *testing.T) {
	templates := &recordingTemplates{}
	panel, err := render.NewPanel(render.WithTemplateRenderer(templates))
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	var out strings.Builder
	err = panel.Render(&out, render.PanelView{
		ID: "mb_details",
		Fields: []render.FieldView{{
			Field: model.Field{Kind: model.KindText, Name: "color", Label: "Color"},
			Data:  render.FieldData{InputName: "mb_details[color]"},
		}},
		Hidden: []render.HiddenField{render.Hidden("mb_details_submitted", 1)},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.String() != "ok" || templates.name != "templates/panel.tmpl" {
		t.Fatalf("unexpected render: %q via %q", out.String(), templates.name)
	}

	data, ok := templates.data.(map[string]any)
	if !ok {
		t.Fatalf("expected map data, got %T", templates.data)
	}
	if data["panel_id"] != "mb_details" {
		t.Fatalf("panel_id = %v", data["panel_id"])
	}
	rows, _ := data["rows"].([]render.Row)
	if len(rows) != 1 || rows[0].Label != "Color" {
		t.Fatalf("unexpected rows %+v", data["rows"])
	}
}

func TestPanelTemplatesDirOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := `<div class="{{ site }}" data-panel="{{ panel_id }}">{% for row in rows %}<p>{{ row.control|safe }}</p>{% endfor %}</div>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "panel.tmpl"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	panel, err := render.NewPanel(
		render.WithTemplatesDir(dir),
		render.WithTemplateGlobals(map[string]any{"site": "shop"}),
	)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	var out strings.Builder
	err = panel.Render(&out, render.PanelView{
		ID: "mb_details",
		Fields: []render.FieldView{{
			Field: model.Field{Kind: model.KindText, Name: "color"},
			Data:  render.FieldData{InputName: "mb_details[color]", Value: "red", Present: true},
		}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div class="shop" data-panel="mb_details"><p><input id="color" type="text" name="mb_details[color]" value="red"/></p></div>`
	if out.String() != want {
		t.Fatalf("render mismatch\nwant: %s\n got: %s", want, out.String())
	}
}

func TestPanelTemplatesDirFallsBackToBundle(t *testing.T) {
	panel, err := render.NewPanel(render.WithTemplatesDir(t.TempDir()))
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	var out strings.Builder
	if err := panel.Render(&out, render.PanelView{ID: "mb_details"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), `<table class="form-table" data-panel="mb_details">`) {
		t.Fatalf("expected bundled markup:\n%s", out.String())
	}
}

func TestPanelWithFieldRenderers(t *testing.T) {
	controls := render.NewDefaultRegistry().Clone()
	controls.MustRegister(model.KindText, func(buf *bytes.Buffer, field model.Field, data render.FieldData) error {
		buf.WriteString(`<input type="email" name="` + data.InputName + `"/>`)
		return nil
	})

	panel, err := render.NewPanel(render.WithFieldRenderers(controls))
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	if panel.Fields() != controls {
		t.Fatalf("panel should use the supplied registry")
	}
	rows, err := panel.Rows(render.PanelView{Fields: []render.FieldView{
		{Field: model.Field{Kind: model.KindText, Name: "email"}, Data: render.FieldData{InputName: "mb_c[email]"}},
		{Field: model.Field{Kind: model.KindCheckbox, Name: "ok"}, Data: render.FieldData{InputName: "mb_c[ok]"}},
	}})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := []render.Row{
		{ID: "email", Control: `<input type="email" name="mb_c[email]"/>`},
		{ID: "ok", Control: `<input id="ok" type="checkbox" name="mb_c[ok]"/>`},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}
