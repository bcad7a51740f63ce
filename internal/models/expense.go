package models

// SplitMethod selects how an expense is divided among its participants.
type SplitMethod string

const (
	// SplitEqual divides the amount evenly across all participants.
	SplitEqual SplitMethod = "equal"

	// SplitWeightedByCount divides the amount proportionally to a
	// per-participant count (e.g. number of games bowled, drinks had).
	SplitWeightedByCount SplitMethod = "weighted_by_count"

	// SplitFixedAmounts uses explicit per-participant amounts. The
	// amounts are trusted as-is and need not sum to the expense total.
	SplitFixedAmounts SplitMethod = "fixed_amounts"
)

// Valid reports whether m is one of the known split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitWeightedByCount, SplitFixedAmounts:
		return true
	}
	return false
}

// Expense represents a shared league expense (lane fees, food, shoe
// rentals) paid by one participant on behalf of several.
// Immutable once created; edited by full replacement.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is a human-readable label, e.g. "Lane fees 3/14".
	Description string `json:"description"`

	// Amount is the positive total paid.
	Amount float64 `json:"amount"`

	// PayerID identifies who paid the full amount.
	PayerID string `json:"payer_id"`

	// ParticipantIDs is the non-empty set of people sharing the cost.
	ParticipantIDs []string `json:"participant_ids"`

	// Method selects how the amount is split.
	Method SplitMethod `json:"method"`

	// CountByParticipant carries the weights for SplitWeightedByCount.
	CountByParticipant map[string]int `json:"count_by_participant,omitempty"`

	// AmountByParticipant carries the explicit shares for
	// SplitFixedAmounts.
	AmountByParticipant map[string]float64 `json:"amount_by_participant,omitempty"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Balance is one participant's net position in the ledger.
// Positive means the participant is owed money, negative means the
// participant owes. Recomputed from the full expense history, never
// incrementally mutated.
type Balance struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Settlement is one suggested payer-to-payee transfer. A list of these
// reconciles the ledger to (approximately) zero. Amount is strictly
// positive.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
