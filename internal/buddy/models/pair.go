package models

import (
	"time"

	dErrors "peopledesk/pkg/domain-errors"
)

// Pair is the active buddy↔buddee assignment.
//
// Invariants:
//   - BuddyID != BuddeeID
//   - a (BuddyID, BuddeeID) tuple exists at most once among active pairs
//   - a BuddeeID is attached to at most one buddy at a time; one buddy may
//     have many buddees
//
// Pairs are hard-deleted on unpairing. Touchpoint history deliberately does
// not reference the pair row (see Touchpoint), so deleting a pair never
// erases notes.
type Pair struct {
	ID        int64     `json:"id"`
	BuddyID   int64     `json:"buddyId"`
	BuddeeID  int64     `json:"buddeeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPair validates the self-pairing invariant. Uniqueness among active
// pairs is a store concern backed by unique indexes.
func NewPair(buddyID, buddeeID int64, now time.Time) (*Pair, error) {
	if buddyID <= 0 || buddeeID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "pair requires valid buddy and buddee ids")
	}
	if buddyID == buddeeID {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "an employee cannot be their own buddy")
	}
	return &Pair{
		BuddyID:   buddyID,
		BuddeeID:  buddeeID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
