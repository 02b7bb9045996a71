package clients

import (
	"context"
	"errors"
	"time"

	"squarebuzz/internal/domain"
	"squarebuzz/internal/infra/authstore"
)

// CredentialStore is the durable token storage the gate consults.
type CredentialStore interface {
	Load() (authstore.Credentials, error)
	Clear() error
}

// IdentityGate combines the local credential store with the identity
// service. It is the entry check run before any question is loaded, and it
// clears dead credentials so an expired session logs out exactly once.
type IdentityGate struct {
	store CredentialStore
	auth  *AuthClient
	now   func() time.Time
}

func NewIdentityGate(store CredentialStore, auth *AuthClient, now func() time.Time) *IdentityGate {
	if now == nil {
		now = time.Now
	}
	return &IdentityGate{store: store, auth: auth, now: now}
}

// CheckAccess validates the stored token. No token blocks entry; a locally
// expired token logs out without a network call; otherwise the identity
// service has the final word.
func (g *IdentityGate) CheckAccess(ctx context.Context) error {
	creds, err := g.store.Load()
	if err != nil {
		return domain.ErrAccessDenied
	}
	if creds.Expired(g.now()) {
		_ = g.store.Clear()
		return domain.ErrSessionExpired
	}
	if _, err := g.auth.Me(ctx); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			_ = g.store.Clear()
		}
		return err
	}
	return nil
}

// Token implements TokenProvider for the question and judge clients.
func (g *IdentityGate) Token() string {
	creds, err := g.store.Load()
	if err != nil {
		return ""
	}
	return creds.Token
}
