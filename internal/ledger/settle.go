package ledger

import (
	"math"
	"sort"

	"github.com/alleytab/alleytab/internal/models"
)

// Epsilon is the amount below which a balance counts as settled.
// It absorbs floating-point noise from repeated splits.
const Epsilon = 0.01

// Settle reduces a set of net balances to a small list of transfers
// that reconciles the ledger to (approximately) zero.
//
// This is a greedy reduction, not a minimum-transaction-count solver:
// it repeatedly matches the largest remaining creditor with the largest
// remaining debtor, transferring the smaller of the two amounts. Ties
// break by the input's insertion order, so output is deterministic. It
// finishes in at most creditors+debtors-1 transfers.
func Settle(balances []models.Balance) []models.Settlement {
	type party struct {
		id        string
		remaining float64
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Amount > Epsilon:
			creditors = append(creditors, party{b.ParticipantID, b.Amount})
		case b.Amount < -Epsilon:
			debtors = append(debtors, party{b.ParticipantID, -b.Amount})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].remaining > creditors[j].remaining })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].remaining > debtors[j].remaining })

	var transfers []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].remaining, creditors[j].remaining)
		if amount > Epsilon {
			transfers = append(transfers, models.Settlement{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].remaining -= amount
		creditors[j].remaining -= amount
		if debtors[i].remaining < Epsilon {
			i++
		}
		if creditors[j].remaining < Epsilon {
			j++
		}
	}

	return transfers
}
