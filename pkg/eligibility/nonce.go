package eligibility

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultNonceTTL    = 24 * time.Hour
	defaultNonceIssuer = "metabox"
	minSecretLen       = 16
)

var (
	// ErrNonceInvalid reports a malformed, forged or mismatched token.
	ErrNonceInvalid = errors.New("eligibility: nonce is invalid")
	// ErrNonceExpired reports a token past its lifetime.
	ErrNonceExpired = errors.New("eligibility: nonce is expired")
	// ErrSecretTooShort guards against trivially guessable signing keys.
	ErrSecretTooShort = errors.New("eligibility: nonce secret too short")
)

// NonceOption customises Nonces.
type NonceOption func(*Nonces)

// WithTTL sets the token lifetime.
func WithTTL(ttl time.Duration) NonceOption {
	return func(n *Nonces) {
		if ttl > 0 {
			n.ttl = ttl
		}
	}
}

// WithIssuer sets the iss claim.
func WithIssuer(issuer string) NonceOption {
	return func(n *Nonces) {
		if issuer != "" {
			n.issuer = issuer
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) NonceOption {
	return func(n *Nonces) {
		if now != nil {
			n.now = now
		}
	}
}

// Nonces issues and verifies HS256-signed tokens bound to an action (the
// panel's meta name, carried as audience) and a content ID (the subject).
type Nonces struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewNonces creates an issuer/verifier pair sharing secret.
func NewNonces(secret []byte, opts ...NonceOption) (*Nonces, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrSecretTooShort, minSecretLen)
	}
	n := &Nonces{
		secret: append([]byte{}, secret...),
		ttl:    defaultNonceTTL,
		issuer: defaultNonceIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n, nil
}

// Issue implements panel.TokenIssuer.
func (n *Nonces) Issue(action, contentID string) (string, error) {
	now := n.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    n.issuer,
		Subject:   contentID,
		Audience:  jwt.ClaimStrings{action},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(n.ttl)),
		ID:        uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(n.secret)
	if err != nil {
		return "", fmt.Errorf("eligibility: sign nonce: %w", err)
	}
	return token, nil
}

// Verify implements Verifier.
func (n *Nonces) Verify(token, action, contentID string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return n.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(n.issuer),
		jwt.WithAudience(action),
		jwt.WithTimeFunc(n.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrNonceExpired
		}
		return fmt.Errorf("%w: %v", ErrNonceInvalid, err)
	}
	if claims.Subject != contentID {
		return fmt.Errorf("%w: subject mismatch", ErrNonceInvalid)
	}
	return nil
}
