// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/alleytab/alleytab/internal/models"
)

// Store defines the persistence operations the services need. The
// abstraction keeps the service layer independent of the backing
// database (SQLite today, anything else later).
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Players. Deactivation keeps the player's games; deletion detaches
	// them (their player id becomes empty) so the games still count in
	// the history they already appear in.
	CreatePlayer(ctx context.Context, player *models.Player) error
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	DeactivatePlayer(ctx context.Context, id string) error
	DeletePlayer(ctx context.Context, id string) error

	// Games. CreateGames persists a batch atomically under one session
	// (a team outing submitted together).
	CreateGames(ctx context.Context, games []*models.GameRecord) error
	ListGames(ctx context.Context) ([]models.GameRecord, error)
	ListGamesByPlayer(ctx context.Context, playerID string) ([]models.GameRecord, error)
	DeleteGame(ctx context.Context, id string) error

	// Expenses. Edits happen by full replacement.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ReplaceExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
