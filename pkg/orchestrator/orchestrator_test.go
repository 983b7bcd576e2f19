package orchestrator_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-metabox/pkg/eligibility"
	"github.com/goliatone/go-metabox/pkg/hooks"
	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/orchestrator"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/payload"
	"github.com/goliatone/go-metabox/pkg/schema"
	"github.com/goliatone/go-metabox/pkg/testsupport"
)

const definitions = `
panels:
  - id: details
    prefix: mb_
    screens: [post]
    fields:
      - {kind: text, name: color, label: Color, default: red}
  - id: flags
    prefix: mb_
    screens: [post]
    context: side
    fields:
      - {kind: checkbox, name: featured, label: Featured}
`

func TestLoadMountsAndSaves(t *testing.T) {
	registrar := hooks.New()
	store := testsupport.NewRecordingStore()
	o := orchestrator.New(
		orchestrator.WithRegistrar(registrar),
		orchestrator.WithStore(store),
		orchestrator.WithDefinitionsFS(fstest.MapFS{"panels.yaml": {Data: []byte(definitions)}}),
	)

	mounted, err := o.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(mounted) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(mounted))
	}
	if placements := registrar.Placements("post"); len(placements) != 2 || placements[0].ID != "mb_flags" {
		t.Fatalf("unexpected placements %+v", placements)
	}

	err = registrar.Save(context.Background(), panel.SaveRequest{
		ContentID: "1",
		Update:    true,
		Payload:   payload.Map{"mb_details[color]": "blue", "mb_flags_submitted": "1", "mb_flags[featured]": "on"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if v, _ := store.Value("1", "color"); v != "blue" {
		t.Fatalf("color = %v", v)
	}
	if v, _ := store.Value("1", "featured"); v != "on" {
		t.Fatalf("featured = %v", v)
	}
}

func TestTokensGateSaves(t *testing.T) {
	nonces, err := eligibility.NewNonces([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("nonces: %v", err)
	}
	registrar := hooks.New()
	store := testsupport.NewRecordingStore()
	o := orchestrator.New(
		orchestrator.WithRegistrar(registrar),
		orchestrator.WithStore(store),
		orchestrator.WithTokens(nonces),
		orchestrator.WithDefinitionsFS(fstest.MapFS{"panels.yaml": {Data: []byte(definitions)}}),
	)
	if _, err := o.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	var out bytes.Buffer
	if err := registrar.Display(context.Background(), &out, "post", "9"); err != nil {
		t.Fatalf("display: %v", err)
	}
	if !strings.Contains(out.String(), `name="mb_details_nonce"`) {
		t.Fatalf("expected nonce field:\n%s", out.String())
	}

	if err := registrar.Save(context.Background(), panel.SaveRequest{
		ContentID: "9",
		Update:    true,
		Payload:   payload.Map{"mb_details[color]": "blue"},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if writes := store.Writes(); len(writes) != 0 {
		t.Fatalf("save without nonce should be skipped, got %+v", writes)
	}

	details, _ := o.Panel("details")
	token, _ := nonces.Issue(details.MetaName(), "9")
	if err := registrar.Save(context.Background(), panel.SaveRequest{
		ContentID: "9",
		Update:    true,
		Payload:   payload.Map{"mb_details[color]": "blue", details.NonceName(): token},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if v, _ := store.Value("9", "color"); v != "blue" {
		t.Fatalf("color = %v", v)
	}
}

func TestMountRejectsDuplicates(t *testing.T) {
	o := orchestrator.New(orchestrator.WithDefinitionsFS(fstest.MapFS{"panels.yaml": {Data: []byte(definitions)}}))
	if _, err := o.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := o.Load(); err == nil {
		t.Fatalf("expected duplicate mount error")
	}
	if len(o.Panels()) != 2 {
		t.Fatalf("expected panels to stay mounted once")
	}
}

func TestMountPanelGatesOnTrimmedID(t *testing.T) {
	nonces, err := eligibility.NewNonces([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("nonces: %v", err)
	}
	registrar := hooks.New()
	store := testsupport.NewRecordingStore()
	o := orchestrator.New(
		orchestrator.WithRegistrar(registrar),
		orchestrator.WithStore(store),
		orchestrator.WithTokens(nonces),
	)

	fields := model.NewRegistry()
	fields.MustAdd(model.Field{Kind: model.KindText, Name: "color", Label: "Color"})

	p, err := o.MountPanel(schema.Panel{
		Config: panel.Config{ID: " details ", Prefix: "mb_", Screens: []string{"post"}},
		Fields: fields,
	})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if p.MetaName() != "mb_details" {
		t.Fatalf("meta name = %q", p.MetaName())
	}
	if _, ok := o.Panel("details"); !ok {
		t.Fatalf("panel should be indexed under the trimmed id")
	}

	token, _ := nonces.Issue("mb_details", "4")
	if err := registrar.Save(context.Background(), panel.SaveRequest{
		ContentID: "4",
		Update:    true,
		Payload:   payload.Map{"mb_details[color]": "green", "mb_details_nonce": token},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if v, _ := store.Value("4", "color"); v != "green" {
		t.Fatalf("color = %v, writes %+v", v, store.Writes())
	}
}
