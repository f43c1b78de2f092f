// Package auth wraps the external authentication provider. The service
// never stores passwords itself: account creation and credential checks
// are forwarded to the provider, and bearer tokens issued by it are
// verified here.
package auth

import (
	"context"
	"errors"
)

// Identity is what the provider knows about an authenticated account.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Provider interface {
	// SignUp creates an account at the provider. Fails with
	// ErrAccountExists when the email is already taken.
	SignUp(ctx context.Context, email, password, name string) error
	// SignIn exchanges credentials for an identity and an access token.
	SignIn(ctx context.Context, email, password string) (Identity, string, error)
	// Verify resolves an access token back to an identity.
	Verify(ctx context.Context, token string) (Identity, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
