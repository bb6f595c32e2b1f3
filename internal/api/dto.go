package api

// SetParticipantCountRequest resizes the group.
type SetParticipantCountRequest struct {
	Count int `json:"count" validate:"required"`
}

// RenameParticipantRequest renames one participant. An empty name is allowed.
type RenameParticipantRequest struct {
	Name *string `json:"name" validate:"required"`
}

// SetTotalAmountRequest sets the bill total.
type SetTotalAmountRequest struct {
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
}

// CalculateRequest optionally sets total and size before calculating. When
// both are omitted the ledger's current values are used.
type CalculateRequest struct {
	TotalAmount      *float64 `json:"totalAmount,omitempty"`
	ParticipantCount *int     `json:"participantCount,omitempty"`
}

// AddExpenseRequest records a payment.
type AddExpenseRequest struct {
	PaidBy      *int    `json:"paidBy" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
	Description string  `json:"description" validate:"max=255"`
}
