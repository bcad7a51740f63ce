// Package auth handles login accounts for the league app: bcrypt
// password verification and HS256 session tokens.
package auth

import (
	"context"
	"errors"

	"github.com/alleytab/alleytab/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("authorization token required")
)

// UserStore is the slice of storage the authenticator needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator abstracts the credential scheme so the service layer
// does not care whether accounts use passwords or something else.
type Authenticator interface {
	// Register creates a new account. The credential format depends on
	// the implementation; for passwords it is the plaintext password.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the account.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
