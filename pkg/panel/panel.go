package panel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-metabox/pkg/codec"
	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/render"
)

const (
	nonceSuffix     = "_nonce"
	submittedSuffix = "_submitted"
)

// Panel is one meta box bound to a field registry and a store.
type Panel struct {
	cfg         Config
	fields      *model.Registry
	store       Store
	logger      *slog.Logger
	eligibility Eligibility
	issuer      TokenIssuer
	renderer    *render.Panel
}

// New validates cfg, builds the panel and registers its display handler once
// per screen plus a single save handler with registrar.
func New(cfg Config, fields *model.Registry, registrar Registrar, store Store, opts ...Option) (*Panel, error) {
	normalized, err := cfg.Normalized()
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, ErrFieldsRequired
	}
	if registrar == nil {
		return nil, ErrRegistrarRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	o := options{
		logger:      slog.New(slog.DiscardHandler),
		eligibility: skipSnapshots,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.renderer == nil {
		renderer, err := render.NewPanel()
		if err != nil {
			return nil, fmt.Errorf("panel: renderer: %w", err)
		}
		o.renderer = renderer
	}

	p := &Panel{
		cfg:         normalized,
		fields:      fields,
		store:       store,
		logger:      o.logger.With("panel", normalized.MetaName()),
		eligibility: o.eligibility,
		issuer:      o.issuer,
		renderer:    o.renderer,
	}
	p.register(registrar)
	return p, nil
}

func (p *Panel) register(registrar Registrar) {
	screens := p.cfg.Screens
	if len(screens) == 0 {
		screens = []string{""}
	}
	for _, screen := range screens {
		registrar.AddPanel(Placement{
			ID:       p.cfg.MetaName(),
			Title:    p.cfg.Title,
			Screen:   screen,
			Context:  p.cfg.Context,
			Priority: p.cfg.Priority,
		}, p.Display)
	}
	registrar.OnSave(p.Save)
}

// Config returns the normalized panel configuration.
func (p *Panel) Config() Config {
	return p.cfg
}

// MetaName returns Prefix + ID.
func (p *Panel) MetaName() string {
	return p.cfg.MetaName()
}

// NonceName is the hidden field carrying the anti-forgery token.
func (p *Panel) NonceName() string {
	return p.cfg.NonceName()
}

// SubmittedName is the hidden marker proving the panel was part of the form.
func (p *Panel) SubmittedName() string {
	return p.cfg.SubmittedName()
}

// InputName is the transmitted name of a field control, without the "[]"
// suffix multiple selects add.
func (p *Panel) InputName(field model.Field) string {
	return p.cfg.InputName(field)
}

// Values returns the stored value of every field that has one, keyed by field
// name. Serialize mode reads the composite record once.
func (p *Panel) Values(ctx context.Context, contentID string) (map[string]any, error) {
	if p.cfg.Mode == ModeSerialize {
		stored, ok, err := p.store.Get(ctx, contentID, p.cfg.MetaName())
		if err != nil {
			return nil, fmt.Errorf("panel: get %q: %w", p.cfg.MetaName(), err)
		}
		if !ok {
			return map[string]any{}, nil
		}
		return codec.Composite(stored), nil
	}

	values := make(map[string]any)
	for _, field := range p.fields.Fields() {
		value, ok, err := p.store.Get(ctx, contentID, field.Name)
		if err != nil {
			return nil, fmt.Errorf("panel: get %q: %w", field.Name, err)
		}
		if ok {
			values[field.Name] = value
		}
	}
	return values, nil
}

// Fields returns the panel's field definitions in order.
func (p *Panel) Fields() []model.Field {
	return p.fields.Fields()
}

// Display renders every field with its stored value into w.
func (p *Panel) Display(ctx context.Context, w io.Writer, contentID string) error {
	stored, err := p.Values(ctx, contentID)
	if err != nil {
		return err
	}

	fields := p.fields.Fields()
	views := make([]render.FieldView, 0, len(fields))
	for _, field := range fields {
		data := render.FieldData{InputName: p.InputName(field)}
		data.Value, data.Present = stored[field.Name]
		views = append(views, render.FieldView{Field: field, Data: data})
	}

	hidden := []render.HiddenField{render.Hidden(p.SubmittedName(), 1)}
	if p.issuer != nil {
		token, err := p.issuer.Issue(p.cfg.MetaName(), contentID)
		if err != nil {
			return fmt.Errorf("panel: issue nonce: %w", err)
		}
		hidden = append(hidden, render.NonceField(p.NonceName(), token))
	}

	return p.renderer.Render(w, render.PanelView{
		ID:     p.cfg.MetaName(),
		Fields: views,
		Hidden: hidden,
	})
}

// Save applies the submitted payload. Ineligible requests and requests that
// do not carry this panel's payload are skipped without error. Storage errors
// stop the pass and are returned.
func (p *Panel) Save(ctx context.Context, req SaveRequest) error {
	logger := p.logger.With("content_id", req.ContentID)

	allowed, err := p.eligibility.Allow(ctx, req)
	if err != nil {
		return fmt.Errorf("panel: eligibility: %w", err)
	}
	if !allowed {
		logger.DebugContext(ctx, "save skipped: not eligible",
			"autosave", req.Autosave, "revision", req.Revision)
		return nil
	}
	if !p.payloadPresent(req.Payload) {
		logger.DebugContext(ctx, "save skipped: panel payload absent")
		return nil
	}

	for _, field := range p.fields.Fields() {
		sub := p.submission(req.Payload, field)
		if p.cfg.Mode == ModeSerialize {
			err = p.saveComposite(ctx, req.ContentID, field, sub)
		} else {
			err = p.saveFlat(ctx, req, field, sub)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Panel) saveFlat(ctx context.Context, req SaveRequest, field model.Field, sub codec.Submission) error {
	decision := codec.Decide(field, sub, req.Update)
	p.logger.DebugContext(ctx, "field decision",
		"content_id", req.ContentID, "field", field.Name, "action", decision.Action.String())

	switch decision.Action {
	case codec.Persist:
		if err := p.store.Set(ctx, req.ContentID, field.Name, decision.Value); err != nil {
			return fmt.Errorf("panel: set %q: %w", field.Name, err)
		}
	case codec.Delete:
		if err := p.store.Delete(ctx, req.ContentID, field.Name); err != nil {
			return fmt.Errorf("panel: delete %q: %w", field.Name, err)
		}
	}
	return nil
}

// saveComposite re-reads the composite for every field and writes it twice:
// once without the field, then again with the trimmed value when non-empty.
func (p *Panel) saveComposite(ctx context.Context, contentID string, field model.Field, sub codec.Submission) error {
	key := p.cfg.MetaName()
	old, _, err := p.store.Get(ctx, contentID, key)
	if err != nil {
		return fmt.Errorf("panel: get %q: %w", key, err)
	}

	removed, merged, keep := codec.Merge(old, field.Name, sub.Value)
	if err := p.store.Set(ctx, contentID, key, removed); err != nil {
		return fmt.Errorf("panel: set %q: %w", key, err)
	}
	p.logger.DebugContext(ctx, "field merged",
		"content_id", contentID, "field", field.Name, "kept", keep)
	if !keep {
		return nil
	}
	if err := p.store.Set(ctx, contentID, key, merged); err != nil {
		return fmt.Errorf("panel: set %q: %w", key, err)
	}
	return nil
}

// submission reads one field from the payload, falling back to "" or an
// empty set when the field was not transmitted.
func (p *Panel) submission(payload Payload, field model.Field) codec.Submission {
	name := p.cfg.TransmittedName(field)
	if field.Multiple() {
		values, ok := payload.Values(name)
		if !ok || values == nil {
			return codec.Submission{Value: []string{}, Present: ok}
		}
		return codec.Submission{Value: values, Present: true}
	}
	value, ok := payload.Value(name)
	return codec.Submission{Value: value, Present: ok}
}

func (p *Panel) payloadPresent(payload Payload) bool {
	if payload == nil {
		return false
	}
	if _, ok := payload.Value(p.SubmittedName()); ok {
		return true
	}
	prefix := p.cfg.MetaName() + "["
	for _, name := range payload.Names() {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
