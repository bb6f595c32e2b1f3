package calculator

import (
	"fmt"
	"math"

	"github.com/mmynk/evensplit/internal/models"
)

// User-facing validation messages for CalculateShare.
const (
	MsgInvalidTotal = "Please enter a valid total amount"
	MsgInvalidCount = "Please enter valid number of participants"
)

// CalculateShare splits totalAmount equally among count participants.
func CalculateShare(totalAmount float64, count int) (float64, error) {
	if totalAmount <= 0 || math.IsInf(totalAmount, 0) || math.IsNaN(totalAmount) {
		return 0, fmt.Errorf("%w: %s", models.ErrValidation, MsgInvalidTotal)
	}
	if count <= 0 {
		return 0, fmt.Errorf("%w: %s", models.ErrValidation, MsgInvalidCount)
	}
	return totalAmount / float64(count), nil
}
