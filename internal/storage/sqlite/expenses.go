package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alleytab/alleytab/internal/models"
)

// CreateExpense persists a new expense with its participant rows.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceExpense swaps an expense for a new version under the same ID.
// Expenses are immutable rows; edits are full replacements.
func (s *SQLiteStore) ReplaceExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("expense id is required for replacement")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to delete old expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense not found: %s", expense.ID)
	}

	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, payer_id, method, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount, expense.PayerID, string(expense.Method), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, pid := range expense.ParticipantIDs {
		var count, fixed interface{}
		if c, ok := expense.CountByParticipant[pid]; ok {
			count = c
		}
		if a, ok := expense.AmountByParticipant[pid]; ok {
			fixed = a
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, participant_id, count, fixed_amount) VALUES (?, ?, ?, ?)",
			expense.ID, pid, count, fixed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}
	return nil
}

// ListExpenses returns the full expense history, oldest first, with
// participant weights attached.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, payer_id, method, created_at FROM expenses ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var method string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PayerID, &method, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Method = models.SplitMethod(method)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadParticipants(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, e *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, count, fixed_amount FROM expense_participants WHERE expense_id = ? ORDER BY rowid",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid string
		var count sql.NullInt64
		var fixed sql.NullFloat64
		if err := rows.Scan(&pid, &count, &fixed); err != nil {
			return fmt.Errorf("failed to scan expense participant: %w", err)
		}
		e.ParticipantIDs = append(e.ParticipantIDs, pid)
		if count.Valid {
			if e.CountByParticipant == nil {
				e.CountByParticipant = make(map[string]int)
			}
			e.CountByParticipant[pid] = int(count.Int64)
		}
		if fixed.Valid {
			if e.AmountByParticipant == nil {
				e.AmountByParticipant = make(map[string]float64)
			}
			e.AmountByParticipant[pid] = fixed.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense participants: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense and its participant rows.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense not found: %s", id)
	}
	return nil
}
