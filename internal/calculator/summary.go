package calculator

import (
	"math"

	"github.com/mmynk/evensplit/internal/models"
)

// Summary holds the headline figures shown next to a settlement plan.
type Summary struct {
	TotalAmount float64 `json:"totalAmount"`
	TotalPaid   float64 `json:"totalPaid"`
	PerPerson   float64 `json:"perPerson"`
}

// Chart is the data behind the payment distribution and balance charts.
type Chart struct {
	Labels     []string  `json:"labels"`
	Paid       []float64 `json:"paid"`
	Magnitudes []float64 `json:"magnitudes"` // |balance|
	Receiving  []bool    `json:"receiving"`  // balance >= 0
}

// Summarize totals what participants paid against the bill.
func Summarize(participants []models.Participant, totalAmount, share float64) Summary {
	var paid float64
	for _, p := range participants {
		paid += p.Paid
	}
	return Summary{
		TotalAmount: totalAmount,
		TotalPaid:   paid,
		PerPerson:   share,
	}
}

// ChartSeries projects participants into parallel per-participant series.
func ChartSeries(participants []models.Participant) Chart {
	c := Chart{
		Labels:     make([]string, len(participants)),
		Paid:       make([]float64, len(participants)),
		Magnitudes: make([]float64, len(participants)),
		Receiving:  make([]bool, len(participants)),
	}
	for i, p := range participants {
		c.Labels[i] = p.Name
		c.Paid[i] = p.Paid
		c.Magnitudes[i] = math.Abs(p.Balance)
		c.Receiving[i] = p.Balance >= 0
	}
	return c
}
