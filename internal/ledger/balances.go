// Package ledger turns the league's shared expenses into net balances
// and suggested settlement transfers. Everything is recomputed from the
// full expense history on every call — balances are never incrementally
// updated, so edits and deletions can never leave them drifted.
package ledger

import "github.com/alleytab/alleytab/internal/models"

// Balances computes each participant's net position over the full
// expense history. Every id in participantIDs gets an entry, zero or
// not; payers or participants outside that universe are appended in
// order of first appearance. Positive means owed, negative means owes.
//
// Per expense the payer is credited the full amount, then each
// participant is debited their share according to the split method.
// Fixed amounts are trusted as caller-supplied, even when they do not
// sum to the expense total.
func Balances(expenses []models.Expense, participantIDs []string) []models.Balance {
	index := make(map[string]int, len(participantIDs))
	out := make([]models.Balance, 0, len(participantIDs))

	entry := func(id string) *models.Balance {
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, models.Balance{ParticipantID: id})
		}
		return &out[i]
	}

	for _, id := range participantIDs {
		entry(id)
	}

	for _, e := range expenses {
		// A payer-less or participant-less expense cannot be split.
		if e.PayerID == "" || len(e.ParticipantIDs) == 0 {
			continue
		}

		entry(e.PayerID).Amount += e.Amount

		switch e.Method {
		case models.SplitWeightedByCount:
			total := 0
			for _, id := range e.ParticipantIDs {
				total += e.CountByParticipant[id]
			}
			if total == 0 {
				// No usable weights; fall back to an equal split.
				debitEqual(entry, e)
				continue
			}
			for _, id := range e.ParticipantIDs {
				entry(id).Amount -= e.Amount * float64(e.CountByParticipant[id]) / float64(total)
			}
		case models.SplitFixedAmounts:
			for _, id := range e.ParticipantIDs {
				entry(id).Amount -= e.AmountByParticipant[id]
			}
		default:
			debitEqual(entry, e)
		}
	}

	return out
}

func debitEqual(entry func(string) *models.Balance, e models.Expense) {
	share := e.Amount / float64(len(e.ParticipantIDs))
	for _, id := range e.ParticipantIDs {
		entry(id).Amount -= share
	}
}
