package ledger

import (
	"github.com/mmynk/evensplit/internal/calculator"
	"github.com/mmynk/evensplit/internal/models"
)

// TotalAmount returns the bill total as last set.
func (l *Ledger) TotalAmount() float64 { return l.totalAmount }

// Share returns the per-person share from the last calculation, 0 if none.
func (l *Ledger) Share() float64 { return l.share }

// ParticipantCount returns the group size.
func (l *Ledger) ParticipantCount() int { return len(l.participants) }

// ResultsReady reports whether balances and settlements should be shown.
func (l *Ledger) ResultsReady() bool { return l.resultsReady }

// Participants returns a copy of the participants in id order.
func (l *Ledger) Participants() []models.Participant {
	return append([]models.Participant(nil), l.participants...)
}

// Expenses returns a copy of the expenses in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	return append([]models.Expense(nil), l.expenses...)
}

// ExpensesBy returns the expenses paid by participant id, in insertion order.
func (l *Ledger) ExpensesBy(id int) []models.Expense {
	var out []models.Expense
	for _, e := range l.expenses {
		if e.PaidBy == id {
			out = append(out, e)
		}
	}
	return out
}

// Settlements plans the transfers that settle the current balances.
func (l *Ledger) Settlements() []models.Transfer {
	return calculator.PlanSettlements(l.participants)
}

// Summary returns total, paid and per-person figures.
func (l *Ledger) Summary() calculator.Summary {
	return calculator.Summarize(l.participants, l.totalAmount, l.share)
}

// Chart returns the per-participant chart series.
func (l *Ledger) Chart() calculator.Chart {
	return calculator.ChartSeries(l.participants)
}
