// Package ledger holds the Ledger aggregate: the only place ledger state is
// mutated. Every mutation validates first and leaves state untouched on error.
//
// A Ledger is not safe for concurrent use. Hosts that share ledgers between
// goroutines must give each one a single owner at a time.
package ledger

import (
	"fmt"

	"github.com/mmynk/evensplit/internal/calculator"
	"github.com/mmynk/evensplit/internal/models"
)

// Ledger is one splitting session: participants, their payments and the
// derived share and balances.
type Ledger struct {
	totalAmount  float64
	share        float64
	participants []models.Participant
	expenses     []models.Expense
	resultsReady bool
	lastID       int64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// SetParticipantCount resizes the group. Any change of size discards all
// participants, expenses and results; setting the current size is a no-op.
func (l *Ledger) SetParticipantCount(n int) error {
	if n == len(l.participants) && n > 0 {
		return nil
	}
	participants, err := models.InitParticipants(n)
	if err != nil {
		return err
	}
	l.participants = participants
	l.expenses = nil
	l.resultsReady = false
	return nil
}

// SetTotalAmount records the bill total. It does not touch the share; only
// Calculate does.
func (l *Ledger) SetTotalAmount(total float64) {
	l.totalAmount = total
}

// Calculate computes the per-person share from the current total and group
// size, recomputes balances and marks results ready.
func (l *Ledger) Calculate() error {
	share, err := calculator.CalculateShare(l.totalAmount, len(l.participants))
	if err != nil {
		return err
	}
	l.share = share
	l.participants = calculator.ComputeBalances(l.participants, l.expenses, share)
	l.resultsReady = true
	return nil
}

// CalculateShare sets total and count, then calculates. Nothing changes unless
// both values are valid.
func (l *Ledger) CalculateShare(total float64, count int) error {
	if _, err := calculator.CalculateShare(total, count); err != nil {
		return err
	}
	if err := l.SetParticipantCount(count); err != nil {
		return err
	}
	l.totalAmount = total
	return l.Calculate()
}

// AddExpense records a payment by participant paidBy. Once a share has been
// calculated, balances are refreshed against that same share.
func (l *Ledger) AddExpense(paidBy int, amount float64, description string) (models.Expense, error) {
	if !l.hasParticipant(paidBy) {
		return models.Expense{}, fmt.Errorf("%w: id %d", models.ErrInvalidParticipant, paidBy)
	}
	expense, err := models.NewExpense(l.lastID+1, paidBy, amount, description, len(l.expenses)+1)
	if err != nil {
		return models.Expense{}, err
	}
	l.lastID = expense.ID
	l.expenses = append(l.expenses, expense)
	l.refresh()
	return expense, nil
}

// RemoveExpense deletes the expense with the given id. Unknown ids are ignored.
func (l *Ledger) RemoveExpense(id int64) {
	for i, e := range l.expenses {
		if e.ID == id {
			l.expenses = append(l.expenses[:i:i], l.expenses[i+1:]...)
			l.refresh()
			return
		}
	}
}

// RenameParticipant changes a participant's display name. Any string is
// accepted, including the empty one.
func (l *Ledger) RenameParticipant(id int, name string) error {
	if !l.hasParticipant(id) {
		return fmt.Errorf("%w: id %d", models.ErrInvalidParticipant, id)
	}
	l.participants[id].Name = name
	return nil
}

// Reset returns the ledger to its empty initial state.
func (l *Ledger) Reset() {
	*l = Ledger{}
}

// refresh recomputes balances with the frozen share, if one exists.
func (l *Ledger) refresh() {
	if l.share > 0 {
		l.participants = calculator.ComputeBalances(l.participants, l.expenses, l.share)
	}
}

func (l *Ledger) hasParticipant(id int) bool {
	return id >= 0 && id < len(l.participants)
}
