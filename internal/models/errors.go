package models

import "errors"

// Ledger errors. All of them reject the offending operation and leave state unchanged.
var (
	ErrInvalidCount       = errors.New("participant count must be a positive integer")
	ErrInvalidAmount      = errors.New("amount must be a positive number")
	ErrInvalidParticipant = errors.New("participant not found")
	ErrValidation         = errors.New("validation failed")
	ErrMalformedSnapshot  = errors.New("malformed snapshot")
)
