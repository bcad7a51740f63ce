package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alleytab/alleytab/internal/models"
)

const gameColumns = "id, player_id, session_id, date_played, score, strikes, spares, tenth_frame, created_at"

// CreateGames persists a batch of games atomically. Records submitted
// together share a session; one is generated when the caller did not
// set it.
func (s *SQLiteStore) CreateGames(ctx context.Context, games []*models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}

	sessionID := games[0].SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, g := range games {
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		if g.SessionID == "" {
			g.SessionID = sessionID
		}
		if g.CreatedAt == 0 {
			g.CreatedAt = now
		}
		if g.DatePlayed == 0 {
			g.DatePlayed = now
		}

		var playerID interface{}
		if g.PlayerID != "" {
			playerID = g.PlayerID
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO games ("+gameColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			g.ID, playerID, g.SessionID, g.DatePlayed, g.Score, g.Strikes, g.Spares, g.TenthFrame, g.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert game: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListGames returns every game, oldest submission first.
func (s *SQLiteStore) ListGames(ctx context.Context) ([]models.GameRecord, error) {
	return s.queryGames(ctx,
		"SELECT "+gameColumns+" FROM games ORDER BY created_at, id")
}

// ListGamesByPlayer returns one player's games, oldest submission first.
func (s *SQLiteStore) ListGamesByPlayer(ctx context.Context, playerID string) ([]models.GameRecord, error) {
	return s.queryGames(ctx,
		"SELECT "+gameColumns+" FROM games WHERE player_id = ? ORDER BY created_at, id", playerID)
}

func (s *SQLiteStore) queryGames(ctx context.Context, query string, args ...interface{}) ([]models.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		var g models.GameRecord
		var playerID sql.NullString
		if err := rows.Scan(&g.ID, &playerID, &g.SessionID, &g.DatePlayed, &g.Score, &g.Strikes, &g.Spares, &g.TenthFrame, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.PlayerID = playerID.String
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return games, nil
}

// DeleteGame removes one game record.
func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("game not found: %s", id)
	}
	return nil
}
