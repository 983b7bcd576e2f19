package panel

import (
	"context"
	"io"
)

// Placement tells the host where the panel appears on an edit screen.
type Placement struct {
	ID       string
	Title    string
	Screen   string
	Context  string
	Priority string
}

// DisplayFunc renders the panel for one content item.
type DisplayFunc func(ctx context.Context, w io.Writer, contentID string) error

// SaveFunc handles a "content saved" event.
type SaveFunc func(ctx context.Context, req SaveRequest) error

// Registrar is the host's lifecycle hook system.
type Registrar interface {
	AddPanel(placement Placement, display DisplayFunc)
	OnSave(save SaveFunc)
}

// Store is the content metadata storage. Get reports ok=false when nothing is
// stored under key.
type Store interface {
	Get(ctx context.Context, contentID, key string) (value any, ok bool, err error)
	Set(ctx context.Context, contentID, key string, value any) error
	Delete(ctx context.Context, contentID, key string) error
}

// Payload gives access to the submitted form values by transmitted name.
type Payload interface {
	Value(name string) (string, bool)
	Values(name string) ([]string, bool)
	Names() []string
}

// SaveRequest describes one "content saved" event.
type SaveRequest struct {
	ContentID string
	// Update is false when the content item is being created.
	Update   bool
	Autosave bool
	Revision bool
	Payload  Payload
}

// Eligibility decides whether a save should touch storage at all.
type Eligibility interface {
	Allow(ctx context.Context, req SaveRequest) (bool, error)
}

// EligibilityFunc adapts a function to Eligibility.
type EligibilityFunc func(ctx context.Context, req SaveRequest) (bool, error)

// Allow implements Eligibility.
func (f EligibilityFunc) Allow(ctx context.Context, req SaveRequest) (bool, error) {
	return f(ctx, req)
}

// TokenIssuer mints the anti-forgery token rendered with the panel.
type TokenIssuer interface {
	Issue(action, contentID string) (string, error)
}

// skipSnapshots is the default gate: autosaves and revision snapshots never
// write panel data.
var skipSnapshots = EligibilityFunc(func(_ context.Context, req SaveRequest) (bool, error) {
	return !req.Autosave && !req.Revision, nil
})
