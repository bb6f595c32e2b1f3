package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/evensplit/internal/models"
)

// SettlementEpsilon is the smallest transfer the planner emits. Smaller
// amounts are treated as already settled.
const SettlementEpsilon = 0.01

// SettledMessage is shown when a plan has no transfers.
const SettledMessage = "Everyone is settled up!"

// PlanSettlements turns participant balances into a list of transfers.
//
// Algorithm (greedy, deterministic):
// - Debtors are participants with a negative balance, creditors a positive one,
//   both kept in participant order
// - Each debtor pays creditors in order, min(remaining debt, remaining credit)
//   per transfer, until the debt is gone or creditors run out
// - Remaining credit is tracked across debtors so no creditor is overpaid
// - Amounts at or below SettlementEpsilon are skipped without being deducted
//
// The result is not guaranteed to have the minimum number of transfers, but it
// has at most len(debtors)+len(creditors)-1 of them.
func PlanSettlements(participants []models.Participant) []models.Transfer {
	var debtors []models.Participant
	var creditors []models.Participant
	for _, p := range participants {
		if p.Balance < 0 {
			debtors = append(debtors, p)
		} else if p.Balance > 0 {
			creditors = append(creditors, p)
		}
	}

	credit := make([]float64, len(creditors))
	for i, c := range creditors {
		credit[i] = c.Balance
	}

	transfers := []models.Transfer{}
	for _, debtor := range debtors {
		remaining := math.Abs(debtor.Balance)

		for i, creditor := range creditors {
			if remaining <= 0 {
				break
			}
			if credit[i] <= 0 {
				continue
			}

			amount := math.Min(remaining, credit[i])
			if amount <= SettlementEpsilon {
				continue
			}

			transfers = append(transfers, models.Transfer{
				From:   debtor.Name,
				To:     creditor.Name,
				Amount: RoundCents(amount),
			})
			remaining -= amount
			credit[i] -= amount
		}
	}

	return transfers
}

// Settled reports whether a plan requires no payments.
func Settled(transfers []models.Transfer) bool {
	return len(transfers) == 0
}

// RoundCents rounds v half away from zero to two decimal places. NaN and
// infinities are returned unchanged.
func RoundCents(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
