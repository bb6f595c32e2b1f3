package models

import "fmt"

// Participant represents one person splitting the bill.
type Participant struct {
	// ID is the 0-based position of the participant in the group.
	ID int `json:"id"`

	// Name is the display name, "Person {ID+1}" by default.
	Name string `json:"name"`

	// Paid is the sum of all expenses paid by this participant.
	Paid float64 `json:"paid"`

	// Balance is Paid minus the per-person share.
	// Positive = owed money, Negative = owes money.
	Balance float64 `json:"balance"`

	// Owes is max(0, -Balance).
	Owes float64 `json:"owes"`

	// Gets is max(0, Balance).
	Gets float64 `json:"gets"`
}

// DefaultParticipantName returns the name given to participant id on initialization.
func DefaultParticipantName(id int) string {
	return fmt.Sprintf("Person %d", id+1)
}

// InitParticipants builds count participants with ids 0..count-1, default names
// and zeroed derived fields.
func InitParticipants(count int) ([]Participant, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	participants := make([]Participant, count)
	for i := range participants {
		participants[i] = Participant{
			ID:   i,
			Name: DefaultParticipantName(i),
		}
	}
	return participants, nil
}
