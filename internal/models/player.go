package models

// Player represents a member of the league roster.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string `json:"id"`

	// Name is the display name of the player.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the player joined the roster.
	CreatedAt int64 `json:"created_at"`

	// DeactivatedAt is the Unix timestamp when the player left the
	// roster, or 0 while the player is active. Deactivated players keep
	// their game history but are excluded from current team aggregates.
	DeactivatedAt int64 `json:"deactivated_at,omitempty"`
}

// Active reports whether the player is on the current roster.
func (p *Player) Active() bool {
	return p.DeactivatedAt == 0
}

// User represents a login account for the league app.
// Users manage the roster and ledger; they are not themselves players.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique), used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
