package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alleytab/alleytab/internal/models"
)

// memUserStore is a map-backed UserStore for tests.
type memUserStore struct {
	byEmail map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*models.User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (s *memUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemUserStore())

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := a.Register(ctx, "kay@example.com", "Kay", "correct horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "correct horse" {
			t.Error("password stored in plaintext")
		}

		got, err := a.Authenticate(ctx, "kay@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated as %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "kay@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := a.Register(ctx, "new@example.com", "New", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Register error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		if _, err := a.Register(ctx, "kay@example.com", "Kay", "another pass"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Register error = %v, want ErrEmailExists", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "kay@example.com"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "kay@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); err == nil {
			t.Error("expected an error for a garbage token")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("different-secret", time.Hour)
		if _, err := other.Validate(token); err == nil {
			t.Error("expected an error for a token signed with another secret")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		tok, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(tok); err == nil {
			t.Error("expected an error for an expired token")
		}
	})
}
