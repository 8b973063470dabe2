package models

import (
	"strings"

	dErrors "peopledesk/pkg/domain-errors"
)

// CreatePairsRequest is the admin batch-pairing payload. One buddy is
// assigned the whole buddee list atomically.
type CreatePairsRequest struct {
	BuddyID   int64   `json:"buddyId"`
	BuddeeIDs []int64 `json:"buddeeIds"`
}

// Normalize drops duplicate buddee ids while preserving order.
func (r *CreatePairsRequest) Normalize() {
	seen := make(map[int64]struct{}, len(r.BuddeeIDs))
	deduped := r.BuddeeIDs[:0]
	for _, id := range r.BuddeeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	r.BuddeeIDs = deduped
}

func (r *CreatePairsRequest) Validate() error {
	if r.BuddyID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "buddyId is required")
	}
	if len(r.BuddeeIDs) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "buddeeIds cannot be empty")
	}
	for _, id := range r.BuddeeIDs {
		if id <= 0 {
			return dErrors.New(dErrors.CodeBadRequest, "buddeeIds must be positive ids")
		}
		if id == r.BuddyID {
			return dErrors.New(dErrors.CodeBadRequest, "a buddy cannot be paired with themselves")
		}
	}
	return nil
}

// TouchpointRequest is the payload for creating a note, draft or submitted.
type TouchpointRequest struct {
	BuddyID  int64  `json:"buddyId"`
	BuddeeID int64  `json:"buddeeId"`
	Note     string `json:"note"`
	Visible  bool   `json:"visible"`
}

func (r *TouchpointRequest) Normalize() {
	r.Note = strings.TrimSpace(r.Note)
}

func (r *TouchpointRequest) Validate() error {
	if r.BuddyID <= 0 || r.BuddeeID <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "buddyId and buddeeId are required")
	}
	if r.Note == "" {
		return dErrors.New(dErrors.CodeBadRequest, "note is required")
	}
	return nil
}

// DraftPatch edits an existing draft. Note is optional (preserve-if-absent);
// Visible is always applied.
type DraftPatch struct {
	Note    *string `json:"note,omitempty"`
	Visible bool    `json:"visible"`
}

func (p *DraftPatch) Normalize() {
	if p.Note != nil {
		trimmed := strings.TrimSpace(*p.Note)
		p.Note = &trimmed
	}
}

func (p *DraftPatch) Validate() error {
	if p.Note != nil && *p.Note == "" {
		return dErrors.New(dErrors.CodeBadRequest, "note cannot be blank")
	}
	return nil
}
