// Package hooks is an in-process lifecycle registrar. It collects panel
// display handlers per screen and save handlers, then dispatches host events
// to them. Hosts with their own hook system implement panel.Registrar
// directly instead.
package hooks

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"slices"
	"sync"

	"github.com/goliatone/go-metabox/pkg/panel"
)

var priorityRank = map[string]int{"high": 0, "core": 1, "default": 2, "low": 3}
var contextRank = map[string]int{"normal": 0, "side": 1, "advanced": 2}

type entry struct {
	placement panel.Placement
	display   panel.DisplayFunc
	seq       int
}

// Registry implements panel.Registrar.
type Registry struct {
	mu     sync.RWMutex
	panels []entry
	saves  []panel.SaveFunc
}

var _ panel.Registrar = (*Registry)(nil)

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddPanel records a display handler.
func (r *Registry) AddPanel(placement panel.Placement, display panel.DisplayFunc) {
	if display == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels = append(r.panels, entry{placement: placement, display: display, seq: len(r.panels)})
}

// OnSave records a save handler.
func (r *Registry) OnSave(save panel.SaveFunc) {
	if save == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, save)
}

// Placements returns the panels shown on screen ordered by context, then
// priority, then registration order. Panels registered without a screen show
// everywhere.
func (r *Registry) Placements(screen string) []panel.Placement {
	entries := r.entries(screen)
	out := make([]panel.Placement, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.placement)
	}
	return out
}

// Display renders every panel for screen into w.
func (r *Registry) Display(ctx context.Context, w io.Writer, screen, contentID string) error {
	for _, e := range r.entries(screen) {
		var buf bytes.Buffer
		if err := e.display(ctx, &buf, contentID); err != nil {
			return fmt.Errorf("hooks: display %q: %w", e.placement.ID, err)
		}
		if _, err := fmt.Fprintf(w, "<div class=\"postbox\" id=\"%s\">\n<h2>%s</h2>\n", html.EscapeString(e.placement.ID), html.EscapeString(e.placement.Title)); err != nil {
			return err
		}
		if _, err := buf.WriteTo(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n</div>\n"); err != nil {
			return err
		}
	}
	return nil
}

// Save dispatches req to every save handler and joins their errors.
func (r *Registry) Save(ctx context.Context, req panel.SaveRequest) error {
	r.mu.RLock()
	saves := slices.Clone(r.saves)
	r.mu.RUnlock()

	var errs []error
	for _, save := range saves {
		if err := save(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) entries(screen string) []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry, 0, len(r.panels))
	for _, e := range r.panels {
		if e.placement.Screen == "" || e.placement.Screen == screen {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b entry) int {
		if c := cmp.Compare(contextRank[a.placement.Context], contextRank[b.placement.Context]); c != 0 {
			return c
		}
		if c := cmp.Compare(priorityRank[a.placement.Priority], priorityRank[b.placement.Priority]); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}
