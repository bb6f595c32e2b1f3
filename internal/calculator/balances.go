package calculator

import (
	"math"

	"github.com/mmynk/evensplit/internal/models"
)

// ComputeBalances derives Paid, Balance, Owes and Gets for every participant
// from the expense list and the per-person share.
//
// Algorithm:
// - Sum expense amounts per payer id in one pass
// - balance = paid - share
// - owes = max(0, -balance), gets = max(0, balance)
//
// The input slice is not modified. Expenses paid by ids that are not in
// participants are ignored; the ledger guarantees they do not occur.
func ComputeBalances(participants []models.Participant, expenses []models.Expense, share float64) []models.Participant {
	paidBy := make(map[int]float64, len(participants))
	for _, e := range expenses {
		paidBy[e.PaidBy] += e.Amount
	}

	updated := make([]models.Participant, len(participants))
	for i, p := range participants {
		paid := paidBy[p.ID]
		balance := paid - share

		p.Paid = paid
		p.Balance = balance
		p.Owes = math.Max(0, -balance)
		p.Gets = math.Max(0, balance)
		updated[i] = p
	}
	return updated
}
