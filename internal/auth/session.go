package auth

import (
	"context"
	"fmt"

	"rockfall-console-backend/internal/kvstore"
)

// AuthError reports a rejected credential. It is surfaced to the user as an
// inline message; nothing else changes.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Session handles the demo login and the route-gating flags in the key-value
// store. Credentials are hardcoded demo values; the flags are client-trust
// only.
type Session struct {
	email    string
	password string
	store    kvstore.Store
}

// NewSession creates a session service over the configured demo credentials.
func NewSession(email, password string, store kvstore.Store) *Session {
	return &Session{email: email, password: password, store: store}
}

// Login checks the submitted credentials and, on success, sets the
// isLoggedIn and userEmail slots.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if email != s.email || password != s.password {
		return &AuthError{Reason: "invalid email or password"}
	}
	if err := s.store.Set(ctx, kvstore.KeyIsLoggedIn, "true"); err != nil {
		return err
	}
	return s.store.Set(ctx, kvstore.KeyUserEmail, email)
}

// Logout clears both session slots.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, kvstore.KeyIsLoggedIn); err != nil {
		return err
	}
	return s.store.Delete(ctx, kvstore.KeyUserEmail)
}

// LoggedIn reports whether the isLoggedIn slot is set to "true".
func (s *Session) LoggedIn(ctx context.Context) (bool, error) {
	val, found, err := s.store.Get(ctx, kvstore.KeyIsLoggedIn)
	if err != nil {
		return false, err
	}
	return found && val == "true", nil
}
