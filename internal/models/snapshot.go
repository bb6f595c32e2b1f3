package models

import (
	"fmt"
	"math"
	"time"
)

// Snapshot is the persisted shape of a ledger. Stores read and write it as JSON.
type Snapshot struct {
	TotalAmount      float64       `json:"totalAmount"`
	ParticipantCount int           `json:"participantCount"`
	Participants     []Participant `json:"participants"`
	Expenses         []Expense     `json:"expenses"`
	PerPersonShare   float64       `json:"perPersonShare"`
	ShowResults      bool          `json:"showResults"`

	// Timestamp is set only on explicitly saved sessions.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Validate checks that s could have been produced by a ledger. It does not
// check derived participant fields; Ledger.Restore recomputes them.
func (s *Snapshot) Validate() error {
	if !finiteNonNegative(s.TotalAmount) {
		return fmt.Errorf("%w: totalAmount %v", ErrMalformedSnapshot, s.TotalAmount)
	}
	if !finiteNonNegative(s.PerPersonShare) {
		return fmt.Errorf("%w: perPersonShare %v", ErrMalformedSnapshot, s.PerPersonShare)
	}
	if s.ParticipantCount < 0 {
		return fmt.Errorf("%w: participantCount %d", ErrMalformedSnapshot, s.ParticipantCount)
	}
	if len(s.Participants) != s.ParticipantCount {
		return fmt.Errorf("%w: %d participants for count %d",
			ErrMalformedSnapshot, len(s.Participants), s.ParticipantCount)
	}
	for i, p := range s.Participants {
		if p.ID != i {
			return fmt.Errorf("%w: participant %d has id %d", ErrMalformedSnapshot, i, p.ID)
		}
	}

	seen := make(map[int64]bool, len(s.Expenses))
	for _, e := range s.Expenses {
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate expense id %d", ErrMalformedSnapshot, e.ID)
		}
		seen[e.ID] = true
		if e.PaidBy < 0 || e.PaidBy >= s.ParticipantCount {
			return fmt.Errorf("%w: expense %d paid by unknown participant %d",
				ErrMalformedSnapshot, e.ID, e.PaidBy)
		}
		if !ValidAmount(e.Amount) {
			return fmt.Errorf("%w: expense %d amount %v", ErrMalformedSnapshot, e.ID, e.Amount)
		}
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
