package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alleytab/alleytab/internal/ledger"
	"github.com/alleytab/alleytab/internal/models"
	"github.com/alleytab/alleytab/internal/storage"
)

// LedgerService manages shared expenses and serves the computed
// balances and suggested settlements.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Register attaches the ledger routes to the mux.
func (s *LedgerService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /api/expenses/replace", s.handleReplaceExpense)
	mux.HandleFunc("POST /api/expenses/delete", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/ledger/balances", s.handleBalances)
	mux.HandleFunc("GET /api/ledger/settlements", s.handleSettlements)
}

// validateExpense enforces the creation invariants. The split weights
// themselves are trusted (fixed amounts deliberately so).
func validateExpense(e *models.Expense) error {
	if e.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if e.PayerID == "" {
		return errors.New("payer_id is required")
	}
	if len(e.ParticipantIDs) == 0 {
		return errors.New("at least one participant is required")
	}
	if !e.Method.Valid() {
		return fmt.Errorf("unknown split method %q", e.Method)
	}
	seen := make(map[string]bool, len(e.ParticipantIDs))
	for _, id := range e.ParticipantIDs {
		if id == "" {
			return errors.New("participant ids must not be empty")
		}
		if seen[id] {
			return fmt.Errorf("duplicate participant %q", id)
		}
		seen[id] = true
	}
	return nil
}

func (s *LedgerService) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateExpense(&expense); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	expense.ID = "" // IDs are store-assigned

	if err := s.store.CreateExpense(r.Context(), &expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	slog.Info("Expense recorded", "expense_id", expense.ID, "amount", expense.Amount, "method", expense.Method)
	writeJSON(w, http.StatusCreated, expense)
}

func (s *LedgerService) handleReplaceExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if expense.ID == "" {
		writeError(w, http.StatusBadRequest, errors.New("id is required"))
		return
	}
	if err := validateExpense(&expense); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.ReplaceExpense(r.Context(), &expense); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	slog.Info("Expense replaced", "expense_id", expense.ID)
	writeJSON(w, http.StatusOK, expense)
}

func (s *LedgerService) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, errors.New("id is required"))
		return
	}
	if err := s.store.DeleteExpense(r.Context(), req.ID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	slog.Info("Expense deleted", "expense_id", req.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *LedgerService) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context())
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// balances recomputes the ledger from the full expense history. The
// participant universe is the whole roster, deactivated players
// included — leaving the league does not clear a tab.
func (s *LedgerService) balances(r *http.Request) ([]models.Balance, error) {
	players, err := s.store.ListPlayers(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	universe := make([]string, 0, len(players))
	for _, p := range players {
		universe = append(universe, p.ID)
	}

	expenses, err := s.store.ListExpenses(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return ledger.Balances(expenses, universe), nil
}

func (s *LedgerService) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.balances(r)
	if err != nil {
		slog.Error("Balance computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if balances == nil {
		balances = []models.Balance{}
	}
	writeJSON(w, http.StatusOK, balances)
}

func (s *LedgerService) handleSettlements(w http.ResponseWriter, r *http.Request) {
	balances, err := s.balances(r)
	if err != nil {
		slog.Error("Balance computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	settlements := ledger.Settle(balances)
	if settlements == nil {
		settlements = []models.Settlement{}
	}
	writeJSON(w, http.StatusOK, settlements)
}
