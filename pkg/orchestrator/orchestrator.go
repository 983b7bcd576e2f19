package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/goliatone/go-metabox/pkg/eligibility"
	"github.com/goliatone/go-metabox/pkg/hooks"
	"github.com/goliatone/go-metabox/pkg/panel"
	"github.com/goliatone/go-metabox/pkg/render"
	"github.com/goliatone/go-metabox/pkg/schema"
	"github.com/goliatone/go-metabox/pkg/storage/memory"
)

// Tokens issues and verifies panel nonces.
type Tokens interface {
	panel.TokenIssuer
	eligibility.Verifier
}

// Option mutates the orchestrator during construction.
type Option func(*Orchestrator)

// WithStore sets the metadata store. Defaults to an in-memory store.
func WithStore(store panel.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithRegistrar sets the host hook registrar. Defaults to hooks.New().
func WithRegistrar(registrar panel.Registrar) Option {
	return func(o *Orchestrator) {
		o.registrar = registrar
	}
}

// WithLogger sets the structured logger handed to every panel.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithTokens renders nonces and requires them on save.
func WithTokens(tokens Tokens) Option {
	return func(o *Orchestrator) {
		o.tokens = tokens
	}
}

// WithRenderer shares one panel renderer across panels.
func WithRenderer(renderer *render.Panel) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithDefinitionsFS sets where Load reads panel definitions from.
func WithDefinitionsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.definitions = fsys
	}
}

// Orchestrator owns the mounted panels of one host.
type Orchestrator struct {
	store       panel.Store
	registrar   panel.Registrar
	logger      *slog.Logger
	tokens      Tokens
	renderer    *render.Panel
	definitions fs.FS

	mu     sync.RWMutex
	panels map[string]*panel.Panel
	order  []string
}

// New constructs an orchestrator with sensible defaults.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{panels: make(map[string]*panel.Panel)}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.store == nil {
		o.store = memory.New()
	}
	if o.registrar == nil {
		o.registrar = hooks.New()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
}

// Store returns the metadata store panels write to.
func (o *Orchestrator) Store() panel.Store {
	return o.store
}

// Registrar returns the hook registrar panels registered with.
func (o *Orchestrator) Registrar() panel.Registrar {
	return o.registrar
}

// Load reads definitions from the configured filesystem and mounts them.
func (o *Orchestrator) Load() ([]*panel.Panel, error) {
	if o.definitions == nil {
		return nil, errors.New("orchestrator: no definitions filesystem configured")
	}
	defs, err := schema.LoadFS(o.definitions)
	if err != nil {
		return nil, err
	}
	return o.Mount(defs)
}

// Mount builds and registers a panel for every definition, in ID order.
func (o *Orchestrator) Mount(defs *schema.Store) ([]*panel.Panel, error) {
	var mounted []*panel.Panel
	for _, def := range defs.Panels() {
		p, err := o.MountPanel(def)
		if err != nil {
			return nil, err
		}
		mounted = append(mounted, p)
	}
	return mounted, nil
}

// MountPanel builds and registers a single panel.
func (o *Orchestrator) MountPanel(def schema.Panel) (*panel.Panel, error) {
	cfg, err := def.Config.Normalized()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: mount %q: %w", def.Config.ID, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.panels[cfg.ID]; exists {
		return nil, fmt.Errorf("orchestrator: panel %q already mounted", cfg.ID)
	}

	opts := []panel.Option{panel.WithLogger(o.logger)}
	if o.renderer != nil {
		opts = append(opts, panel.WithRenderer(o.renderer))
	}
	if o.tokens != nil {
		opts = append(opts,
			panel.WithTokenIssuer(o.tokens),
			panel.WithEligibility(eligibility.Default(o.tokens, cfg)),
		)
	}

	p, err := panel.New(cfg, def.Fields, o.registrar, o.store, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: mount %q: %w", cfg.ID, err)
	}
	o.panels[cfg.ID] = p
	o.order = append(o.order, cfg.ID)
	o.logger.Debug("panel mounted", "panel", p.MetaName(), "fields", len(p.Fields()), "source", def.Source)
	return p, nil
}

// Panel returns a mounted panel by definition ID.
func (o *Orchestrator) Panel(id string) (*panel.Panel, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.panels[id]
	return p, ok
}

// Panels returns mounted panels in mount order.
func (o *Orchestrator) Panels() []*panel.Panel {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*panel.Panel, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.panels[id])
	}
	return out
}
