// Package eligibility provides composable save gates for panel.Panel:
// autosave and revision skips, plus anti-forgery nonces signed as JWTs.
package eligibility

import (
	"context"
	"errors"

	"github.com/goliatone/go-metabox/pkg/panel"
)

// SkipAutosave rejects autosave requests.
var SkipAutosave = panel.EligibilityFunc(func(_ context.Context, req panel.SaveRequest) (bool, error) {
	return !req.Autosave, nil
})

// SkipRevisions rejects revision snapshots.
var SkipRevisions = panel.EligibilityFunc(func(_ context.Context, req panel.SaveRequest) (bool, error) {
	return !req.Revision, nil
})

// Chain allows a save only when every gate allows it. Gates run in order and
// the first rejection or error wins.
func Chain(gates ...panel.Eligibility) panel.Eligibility {
	return panel.EligibilityFunc(func(ctx context.Context, req panel.SaveRequest) (bool, error) {
		for _, gate := range gates {
			if gate == nil {
				continue
			}
			ok, err := gate.Allow(ctx, req)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}

// Verifier checks a nonce minted for action and contentID.
type Verifier interface {
	Verify(token, action, contentID string) error
}

// RequireNonce allows a save only when the payload carries a valid token
// under field. A missing or rejected token skips the save without error;
// any other verifier failure is returned.
func RequireNonce(verifier Verifier, field, action string) panel.Eligibility {
	return panel.EligibilityFunc(func(_ context.Context, req panel.SaveRequest) (bool, error) {
		if req.Payload == nil {
			return false, nil
		}
		token, ok := req.Payload.Value(field)
		if !ok || token == "" {
			return false, nil
		}
		err := verifier.Verify(token, action, req.ContentID)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, ErrNonceInvalid), errors.Is(err, ErrNonceExpired):
			return false, nil
		default:
			return false, err
		}
	})
}

// Default is the gate a host normally wants for cfg: skip autosaves and
// revisions, then require the panel's nonce.
func Default(verifier Verifier, cfg panel.Config) panel.Eligibility {
	return Chain(SkipAutosave, SkipRevisions, RequireNonce(verifier, cfg.NonceName(), cfg.MetaName()))
}
