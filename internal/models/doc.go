// Package models defines the core domain models for evensplit.
//
// # Models
//
//   - Participant: one person in the group, identified by a 0-based index
//   - Expense: a payment one participant made towards the bill
//   - Transfer: a "who pays whom" instruction produced by the settlement planner
//   - Snapshot: the persisted shape of a ledger, read and written by stores
//
// Participants are identified by integer ids assigned when the group size is set.
// Names are display-only and may be edited freely, including to the empty string.
//
// # Derived fields
//
// Participant.Paid, Balance, Owes and Gets are derived by the balance engine in
// internal/calculator. They are stored on the participant so a snapshot carries
// everything a presentation layer needs to render without recomputing.
package models
