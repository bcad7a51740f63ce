package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alleytab/alleytab/internal/models"
	"github.com/alleytab/alleytab/internal/notation"
	"github.com/alleytab/alleytab/internal/storage"
)

// GameService records and serves game records, and exposes interactive
// 10th-frame notation validation for the score entry form.
type GameService struct {
	store storage.Store
}

// NewGameService creates a GameService.
func NewGameService(store storage.Store) *GameService {
	return &GameService{store: store}
}

// Register attaches the game routes to the mux.
func (s *GameService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/games", s.handleList)
	mux.HandleFunc("POST /api/games", s.handleSubmit)
	mux.HandleFunc("POST /api/games/delete", s.handleDelete)
	mux.HandleFunc("POST /api/notation/validate", s.handleValidateNotation)
}

// gameEntry is one player's line on the submission form.
type gameEntry struct {
	PlayerID   string `json:"player_id"`
	Score      int    `json:"score"`
	Strikes    int    `json:"strikes"`
	Spares     int    `json:"spares"`
	TenthFrame string `json:"tenth_frame"`
}

// validateEntry enforces the record invariants before anything is
// persisted: counts in range, and a complete, legal 10th frame.
func validateEntry(e gameEntry) error {
	if e.PlayerID == "" {
		return errors.New("player_id is required")
	}
	if e.Score < 0 || e.Score > 300 {
		return fmt.Errorf("score %d out of range", e.Score)
	}
	if e.Strikes < 0 || e.Strikes > 9 || e.Spares < 0 || e.Spares > 9 {
		return fmt.Errorf("strike and spare counts must be between 0 and 9")
	}
	if e.Strikes+e.Spares > 9 {
		return fmt.Errorf("strikes (%d) plus spares (%d) cannot exceed the nine frames", e.Strikes, e.Spares)
	}

	res := notation.Validate(e.TenthFrame)
	switch res.Status {
	case notation.StatusInvalid:
		return fmt.Errorf("tenth frame %q: %s", e.TenthFrame, res.Reason)
	case notation.StatusIncomplete:
		return fmt.Errorf("tenth frame %q is incomplete: %s", e.TenthFrame, res.Reason)
	}
	return nil
}

func (s *GameService) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DatePlayed int64       `json:"date_played"`
		Games      []gameEntry `json:"games"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Games) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("at least one game is required"))
		return
	}

	records := make([]*models.GameRecord, 0, len(req.Games))
	for i, e := range req.Games {
		if err := validateEntry(e); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("game %d: %w", i+1, err))
			return
		}
		if _, err := s.store.GetPlayer(r.Context(), e.PlayerID); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("game %d: %w", i+1, err))
			return
		}
		records = append(records, &models.GameRecord{
			PlayerID:   e.PlayerID,
			DatePlayed: req.DatePlayed,
			Score:      e.Score,
			Strikes:    e.Strikes,
			Spares:     e.Spares,
			TenthFrame: e.TenthFrame,
		})
	}

	if err := s.store.CreateGames(r.Context(), records); err != nil {
		slog.Error("CreateGames failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("Session recorded", "session_id", records[0].SessionID, "games", len(records))
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": records[0].SessionID,
		"games":      records,
	})
}

func (s *GameService) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		games []models.GameRecord
		err   error
	)
	if playerID := r.URL.Query().Get("player_id"); playerID != "" {
		games, err = s.store.ListGamesByPlayer(r.Context(), playerID)
	} else {
		games, err = s.store.ListGames(r.Context())
	}
	if err != nil {
		slog.Error("ListGames failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if games == nil {
		games = []models.GameRecord{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *GameService) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string `json:"game_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.GameID == "" {
		writeError(w, http.StatusBadRequest, errors.New("game_id is required"))
		return
	}
	if err := s.store.DeleteGame(r.Context(), req.GameID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	slog.Info("Game deleted", "game_id", req.GameID)
	w.WriteHeader(http.StatusNoContent)
}

// notationResponse mirrors the validator so the form can show the
// verdict (and, while the string is legal, a live pin preview) inline.
type notationResponse struct {
	Status  string                   `json:"status"`
	Kind    notation.ErrorKind       `json:"kind,omitempty"`
	Reason  string                   `json:"reason,omitempty"`
	Derived *models.TenthFrameResult `json:"derived,omitempty"`
}

func (s *GameService) handleValidateNotation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notation string `json:"notation"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := notation.Validate(req.Notation)
	resp := notationResponse{
		Status: res.Status.String(),
		Kind:   res.Kind,
		Reason: res.Reason,
	}
	if res.Ok() {
		if derived, err := notation.Derive(req.Notation); err == nil {
			resp.Derived = &derived
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
