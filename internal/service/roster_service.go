package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alleytab/alleytab/internal/models"
	"github.com/alleytab/alleytab/internal/storage"
)

// RosterService manages the league's player roster.
type RosterService struct {
	store storage.Store
}

// NewRosterService creates a RosterService.
func NewRosterService(store storage.Store) *RosterService {
	return &RosterService{store: store}
}

// Register attaches the roster routes to the mux.
func (s *RosterService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/players", s.handleList)
	mux.HandleFunc("POST /api/players", s.handleCreate)
	mux.HandleFunc("POST /api/players/deactivate", s.handleDeactivate)
	mux.HandleFunc("POST /api/players/delete", s.handleDelete)
}

func (s *RosterService) handleList(w http.ResponseWriter, r *http.Request) {
	players, err := s.store.ListPlayers(r.Context())
	if err != nil {
		slog.Error("ListPlayers failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *RosterService) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("player name is required"))
		return
	}

	player := &models.Player{Name: req.Name}
	if err := s.store.CreatePlayer(r.Context(), player); err != nil {
		slog.Error("CreatePlayer failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (s *RosterService) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDFromBody(w, r)
	if !ok {
		return
	}
	if err := s.store.DeactivatePlayer(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	slog.Info("Player deactivated", "player_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *RosterService) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := playerIDFromBody(w, r)
	if !ok {
		return
	}
	if err := s.store.DeletePlayer(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	slog.Info("Player deleted, games detached", "player_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func playerIDFromBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		PlayerID string `json:"player_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	if req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, errors.New("player_id is required"))
		return "", false
	}
	return req.PlayerID, true
}
