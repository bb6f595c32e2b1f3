package models

import (
	"fmt"
	"math"
)

// Expense represents a single payment made by one participant.
// Expenses are immutable; removing one deletes the whole record.
type Expense struct {
	// ID is unique within a ledger and increases monotonically.
	ID int64 `json:"id"`

	// PaidBy is the Participant.ID of the payer.
	PaidBy int `json:"paidBy"`

	// Amount is the positive amount paid.
	Amount float64 `json:"amount"`

	// Description is a free-text label, "Expense {n}" when left empty.
	Description string `json:"description"`
}

// NewExpense validates amount and builds an Expense. position is the 1-based
// index the expense will occupy in the ledger and is only used to derive the
// default description. paidBy is not checked here; the ledger owns that invariant.
func NewExpense(id int64, paidBy int, amount float64, description string, position int) (Expense, error) {
	if !ValidAmount(amount) {
		return Expense{}, fmt.Errorf("%w: got %v", ErrInvalidAmount, amount)
	}
	if description == "" {
		description = fmt.Sprintf("Expense %d", position)
	}
	return Expense{
		ID:          id,
		PaidBy:      paidBy,
		Amount:      amount,
		Description: description,
	}, nil
}

// ValidAmount reports whether v is a positive finite number.
func ValidAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
