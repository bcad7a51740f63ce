package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alleytab/alleytab/internal/models"
	"github.com/alleytab/alleytab/internal/stats"
	"github.com/alleytab/alleytab/internal/storage"
)

// StatsService serves the derived player and team statistics.
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a StatsService.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// Register attaches the stats routes to the mux.
func (s *StatsService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/stats/player", s.handlePlayer)
	mux.HandleFunc("GET /api/stats/team", s.handleTeam)
}

func (s *StatsService) handlePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("player_id query parameter is required"))
		return
	}
	if _, err := s.store.GetPlayer(r.Context(), playerID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	games, err := s.store.ListGamesByPlayer(r.Context(), playerID)
	if err != nil {
		slog.Error("ListGamesByPlayer failed", "player_id", playerID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.ForPlayer(playerID, games))
}

// handleTeam aggregates over the games of the currently active roster.
// Deactivated players' games drop out here while their own player
// pages keep the full history.
func (s *StatsService) handleTeam(w http.ResponseWriter, r *http.Request) {
	players, err := s.store.ListPlayers(r.Context())
	if err != nil {
		slog.Error("ListPlayers failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	active := make(map[string]bool, len(players))
	for _, p := range players {
		if p.Active() {
			active[p.ID] = true
		}
	}

	games, err := s.store.ListGames(r.Context())
	if err != nil {
		slog.Error("ListGames failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	roster := make([]models.GameRecord, 0, len(games))
	for _, g := range games {
		if active[g.PlayerID] {
			roster = append(roster, g)
		}
	}
	writeJSON(w, http.StatusOK, stats.ForTeam(roster))
}
