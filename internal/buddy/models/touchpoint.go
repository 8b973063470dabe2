package models

import (
	"time"

	dErrors "peopledesk/pkg/domain-errors"
)

// TouchpointStatus is the lifecycle state of a check-in note.
type TouchpointStatus string

const (
	// StatusDraft marks a note still editable by its buddy.
	StatusDraft TouchpointStatus = "DRAFT"
	// StatusSubmitted is terminal; there is no un-submit.
	StatusSubmitted TouchpointStatus = "SUBMITTED"
)

// Touchpoint is a timestamped mentoring check-in note.
//
// A touchpoint references the buddy/buddee id pair directly rather than a
// Pair row, so history survives unpairing and re-pairing. The Deleted flag
// is flipped only by the pairing lifecycle (never by direct API) and hides
// rows from active queries while retaining them for audit.
//
// State machine: DRAFT --submit--> SUBMITTED (one-way). Orthogonally,
// Deleted toggles at any status.
type Touchpoint struct {
	ID        int64            `json:"id"`
	BuddyID   int64            `json:"buddyId"`
	BuddeeID  int64            `json:"buddeeId"`
	Note      string           `json:"note"`
	Visible   bool             `json:"visible"`
	Status    TouchpointStatus `json:"status"`
	Deleted   bool             `json:"-"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewTouchpoint constructs a touchpoint, validating its invariants.
func NewTouchpoint(buddyID, buddeeID int64, note string, visible bool, status TouchpointStatus, now time.Time) (*Touchpoint, error) {
	if buddyID <= 0 || buddeeID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "touchpoint requires valid buddy and buddee ids")
	}
	if note == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "touchpoint note cannot be empty")
	}
	if status != StatusDraft && status != StatusSubmitted {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid touchpoint status")
	}
	return &Touchpoint{
		BuddyID:   buddyID,
		BuddeeID:  buddeeID,
		Note:      note,
		Visible:   visible,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsDraft reports whether the note is still editable.
func (t *Touchpoint) IsDraft() bool {
	return t.Status == StatusDraft
}

// VisibleToBuddee reports whether the buddee-facing feed may show this note.
// Drafts and hidden notes are never disclosed regardless of visibility.
func (t *Touchpoint) VisibleToBuddee() bool {
	return !t.Deleted && t.Visible && t.Status == StatusSubmitted
}

// ApplyPatch edits a draft in place. Note is preserve-if-absent; Visible is
// always overwritten.
func (t *Touchpoint) ApplyPatch(patch DraftPatch, now time.Time) {
	if patch.Note != nil {
		t.Note = *patch.Note
	}
	t.Visible = patch.Visible
	t.UpdatedAt = now
}

// Submit transitions DRAFT -> SUBMITTED. The transition is one-way.
func (t *Touchpoint) Submit(now time.Time) error {
	if !t.IsDraft() {
		return dErrors.New(dErrors.CodeInvariantViolation, "only drafts can be submitted")
	}
	t.Status = StatusSubmitted
	t.UpdatedAt = now
	return nil
}
