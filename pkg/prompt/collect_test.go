package prompt_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/prompt"
)

// scriptedDriver answers prompts from queues and records the questions.
type scriptedDriver struct {
	texts   []string
	checks  []bool
	choices []string
	many    [][]string

	asked    []prompt.Question
	headings []string
	fail     error
}

func (d *scriptedDriver) Heading(_ context.Context, title string) error {
	d.headings = append(d.headings, title)
	return nil
}

func (d *scriptedDriver) Text(_ context.Context, q prompt.Question) (string, error) {
	if d.fail != nil {
		return "", d.fail
	}
	d.asked = append(d.asked, q)
	out := d.texts[0]
	d.texts = d.texts[1:]
	return out, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, q prompt.Question) (string, error) {
	return d.Text(ctx, q)
}

func (d *scriptedDriver) Checkbox(_ context.Context, q prompt.Question) (bool, error) {
	d.asked = append(d.asked, q)
	out := d.checks[0]
	d.checks = d.checks[1:]
	return out, nil
}

func (d *scriptedDriver) Choose(_ context.Context, q prompt.Question) (string, error) {
	d.asked = append(d.asked, q)
	out := d.choices[0]
	d.choices = d.choices[1:]
	return out, nil
}

func (d *scriptedDriver) ChooseMany(_ context.Context, q prompt.Question) ([]string, error) {
	d.asked = append(d.asked, q)
	out := d.many[0]
	d.many = d.many[1:]
	return out, nil
}

func testFields(t *testing.T) []model.Field {
	t.Helper()
	fields := model.NewRegistry()
	for _, err := range []error{
		fields.AddText("color", nil, "Color", "red"),
		fields.AddTextArea("notes", nil, "Notes", ""),
		fields.AddCheckbox("featured", nil, "Featured"),
		fields.AddCheckbox("hidden", nil, "Hidden"),
		fields.AddSelect("size", model.Opts("1", "Small", "2", "Large"), false, nil, "Size", true),
		fields.AddSelect("tags", model.Opts("a", "A", "b", "B", "c", "C"), true, nil, "Tags", false),
	} {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return fields.Fields()
}

func TestCollectBuildsFormPayload(t *testing.T) {
	driver := &scriptedDriver{
		texts:   []string{"green", "hello"},
		checks:  []bool{false, true},
		choices: []string{"1"},
		many:    [][]string{{"a", "c"}},
	}
	cfg := panel.Config{ID: "details", Prefix: "mb_", Title: "Details"}
	stored := map[string]any{
		"featured": "on",
		"size":     2,
		"tags":     []any{"b"},
	}

	values, err := prompt.New(prompt.WithDriver(driver)).Collect(context.Background(), cfg, testFields(t), stored)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := url.Values{
		"mb_details_submitted": {"1"},
		"mb_details[color]":    {"green"},
		"mb_details[notes]":    {"hello"},
		"mb_details[hidden]":   {"on"},
		"mb_details[size]":     {"1"},
		"mb_details[tags][]":   {"a", "c"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	sizes := model.Opts("1", "Small", "2", "Large")
	tags := model.Opts("a", "A", "b", "B", "c", "C")
	wantAsked := []prompt.Question{
		{Message: "Color", Default: "red"},
		{Message: "Notes"},
		{Message: "Featured", Checked: true},
		{Message: "Hidden"},
		{Message: "Size", Options: sizes, Selected: []string{"2"}},
		{Message: "Tags", Options: tags, Selected: []string{"b"}},
	}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Details"}, driver.headings); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectPreselectsSelectDefault(t *testing.T) {
	driver := &scriptedDriver{
		texts:   []string{"", ""},
		checks:  []bool{false, false},
		choices: []string{"1"},
		many:    [][]string{nil},
	}
	values, err := prompt.New(prompt.WithDriver(driver)).Collect(context.Background(), panel.Config{ID: "d"}, testFields(t), nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := driver.asked[4].Selected; !cmp.Equal(got, []string{"1"}) {
		t.Fatalf("single select should preselect its default, got %v", got)
	}
	if got := driver.asked[5].Selected; got != nil {
		t.Fatalf("multi select with nothing stored should preselect nothing, got %v", got)
	}
	if _, ok := values["d[tags][]"]; ok {
		t.Fatalf("empty multi select should be omitted: %v", values)
	}
	if _, ok := values["d[featured]"]; ok {
		t.Fatalf("unchecked checkbox should be omitted: %v", values)
	}
}

func TestCollectWrapsDriverErrors(t *testing.T) {
	driver := &scriptedDriver{fail: prompt.ErrAborted}
	_, err := prompt.New(prompt.WithDriver(driver)).Collect(context.Background(), panel.Config{ID: "d"}, testFields(t), nil)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
