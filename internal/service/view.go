package service

import (
	"time"

	"github.com/mmynk/evensplit/internal/calculator"
	"github.com/mmynk/evensplit/internal/ledger"
	"github.com/mmynk/evensplit/internal/models"
)

// View is a read-only projection of a ledger, safe to hand to a presentation layer.
type View struct {
	ID               string               `json:"id"`
	TotalAmount      float64              `json:"totalAmount"`
	ParticipantCount int                  `json:"participantCount"`
	Participants     []models.Participant `json:"participants"`
	Expenses         []models.Expense     `json:"expenses"`
	PerPersonShare   float64              `json:"perPersonShare"`
	ShowResults      bool                 `json:"showResults"`

	// Results is only populated once a share has been calculated.
	Results *Results `json:"results,omitempty"`
}

// Results are the derived views shown after calculation.
type Results struct {
	Summary calculator.Summary `json:"summary"`
	Plan    Plan               `json:"plan"`
	Chart   calculator.Chart   `json:"chart"`
}

// Plan is a settlement plan with its "settled" status.
type Plan struct {
	Transfers []models.Transfer `json:"transfers"`
	Settled   bool              `json:"settled"`
	Message   string            `json:"message,omitempty"`
}

// SessionInfo describes an explicitly saved session.
type SessionInfo struct {
	LedgerID string    `json:"ledgerId"`
	SavedAt  time.Time `json:"savedAt"`
}

func newPlan(transfers []models.Transfer) Plan {
	p := Plan{Transfers: transfers, Settled: calculator.Settled(transfers)}
	if p.Settled {
		p.Message = calculator.SettledMessage
	}
	return p
}

func newView(id string, l *ledger.Ledger) View {
	v := View{
		ID:               id,
		TotalAmount:      l.TotalAmount(),
		ParticipantCount: l.ParticipantCount(),
		Participants:     l.Participants(),
		Expenses:         l.Expenses(),
		PerPersonShare:   l.Share(),
		ShowResults:      l.ResultsReady(),
	}
	if v.Participants == nil {
		v.Participants = []models.Participant{}
	}
	if v.Expenses == nil {
		v.Expenses = []models.Expense{}
	}
	if v.ShowResults {
		v.Results = &Results{
			Summary: l.Summary(),
			Plan:    newPlan(l.Settlements()),
			Chart:   l.Chart(),
		}
	}
	return v
}
