package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alleytab/alleytab/internal/models"
)

// CreatePlayer adds a player to the roster.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name, created_at, deactivated_at) VALUES (?, ?, ?, NULL)",
		player.ID, player.Name, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player := &models.Player{}
	var deactivated sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, deactivated_at FROM players WHERE id = ?",
		id,
	).Scan(&player.ID, &player.Name, &player.CreatedAt, &deactivated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	player.DeactivatedAt = deactivated.Int64
	return player, nil
}

// ListPlayers returns the full roster, active and deactivated, in the
// order they joined.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, deactivated_at FROM players ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		var deactivated sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &deactivated); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		p.DeactivatedAt = deactivated.Int64
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

// DeactivatePlayer takes a player off the current roster without
// touching their games.
func (s *SQLiteStore) DeactivatePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE players SET deactivated_at = ? WHERE id = ? AND deactivated_at IS NULL",
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("player not found or already deactivated: %s", id)
	}
	return nil
}

// DeletePlayer removes a player entirely. Their games survive with an
// empty player id (the foreign key sets it NULL), so historical team
// totals they already appear in are preserved.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("player not found: %s", id)
	}
	return nil
}
