package ledger

import (
	"github.com/mmynk/evensplit/internal/models"
)

// Snapshot captures the ledger state for an external store.
func (l *Ledger) Snapshot() models.Snapshot {
	return models.Snapshot{
		TotalAmount:      l.totalAmount,
		ParticipantCount: len(l.participants),
		Participants:     l.Participants(),
		Expenses:         l.Expenses(),
		PerPersonShare:   l.share,
		ShowResults:      l.resultsReady,
	}
}

// Restore replaces the ledger state with s. A snapshot that fails validation
// is rejected with models.ErrMalformedSnapshot and the ledger is left as is.
// Paid, balances and their splits are recomputed from the expenses and the
// stored share, or left zero when no share has been calculated.
func (l *Ledger) Restore(s models.Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var lastID int64
	for _, e := range s.Expenses {
		lastID = max(lastID, e.ID)
	}

	// Derived fields are never trusted; only ids and names are kept.
	var participants []models.Participant
	for _, p := range s.Participants {
		participants = append(participants, models.Participant{ID: p.ID, Name: p.Name})
	}

	*l = Ledger{
		totalAmount:  s.TotalAmount,
		share:        s.PerPersonShare,
		participants: participants,
		expenses:     append([]models.Expense(nil), s.Expenses...),
		resultsReady: s.ShowResults,
		lastID:       lastID,
	}
	l.refresh()
	return nil
}
