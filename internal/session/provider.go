package session

import (
	"context"
	"log/slog"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// Provider resolves session ids to principals. It is the only component that
// knows how a session becomes an identity; handlers call Resolve exactly once
// per request and pass the result down explicitly.
type Provider struct {
	store       *Store
	users       repository.UserRepository
	adminUserID uint
}

// NewProvider returns a Provider backed by the given store and user repository.
func NewProvider(store *Store, users repository.UserRepository, adminUserID uint) *Provider {
	return &Provider{store: store, users: users, adminUserID: adminUserID}
}

// Store exposes the underlying session store for flash handling.
func (p *Provider) Store() *Store {
	return p.store
}

// Login binds the session to the user. Subsequent Resolve calls for the same
// session id yield an Identified principal until logout or expiry.
func (p *Provider) Login(ctx context.Context, sid string, user *models.User) error {
	return p.store.Bind(ctx, sid, user.ID)
}

// Logout returns the session to Anonymous. Idempotent.
func (p *Provider) Logout(ctx context.Context, sid string) error {
	return p.store.Unbind(ctx, sid)
}

// Resolve maps a session id to a principal. Every failure path degrades to
// Anonymous rather than erroring: a stale binding to a deleted user, a
// malformed session value, or a store outage must never take a page down.
func (p *Provider) Resolve(ctx context.Context, sid string) auth.Principal {
	if sid == "" {
		return auth.Anonymous
	}

	userID, ok, err := p.store.UserID(ctx, sid)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "session lookup failed, treating as anonymous",
			slog.String("error", err.Error()))
		return auth.Anonymous
	}
	if !ok {
		return auth.Anonymous
	}

	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		if !models.IsCode(err, models.CodeNotFound) {
			middleware.Logger.WarnContext(ctx, "session user load failed, treating as anonymous",
				slog.String("error", err.Error()))
		}
		return auth.Anonymous
	}

	return auth.Identify(user, p.adminUserID)
}
