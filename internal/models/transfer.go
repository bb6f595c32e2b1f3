package models

// Transfer is a directed payment instruction that moves a debtor towards zero.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
