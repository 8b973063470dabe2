package models

import (
	"time"

	dirmodels "peopledesk/internal/directory/models"
)

// PersonDTO is the directory slice rendered in buddy views.
type PersonDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position,omitempty"`
}

// NewPersonDTO projects a directory profile for rendering.
func NewPersonDTO(p *dirmodels.Profile) PersonDTO {
	return PersonDTO{
		ID:       p.ID,
		Name:     p.DisplayName(),
		Email:    p.Email,
		Position: p.Position,
	}
}

// RosterEntry is one row of the admin pair overview: a buddy, one of their
// buddees (empty for unpaired buddies), and the latest touchpoint for that
// pair (empty fields when no touchpoint exists yet). Derived on every read,
// never persisted.
type RosterEntry struct {
	Buddy         PersonDTO  `json:"buddy"`
	Buddee        *PersonDTO `json:"buddee,omitempty"`
	PairID        *int64     `json:"pairId,omitempty"`
	Note          string     `json:"note,omitempty"`
	Visible       *bool      `json:"visible,omitempty"`
	NoteUpdatedAt *time.Time `json:"noteUpdatedAt,omitempty"`
}

// FeedEntry is one row of the buddee- or buddy-facing touchpoint feed.
// A placeholder entry carries the pair identity with an empty note so the
// UI can distinguish "no notes yet" from "not paired".
type FeedEntry struct {
	ID        *int64           `json:"id,omitempty"`
	BuddyID   int64            `json:"buddyId"`
	BuddeeID  int64            `json:"buddeeId"`
	Note      string           `json:"note,omitempty"`
	Visible   *bool            `json:"visible,omitempty"`
	Status    TouchpointStatus `json:"status,omitempty"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

// NewFeedEntry projects a touchpoint into a feed row.
func NewFeedEntry(t *Touchpoint) FeedEntry {
	visible := t.Visible
	updatedAt := t.UpdatedAt
	id := t.ID
	return FeedEntry{
		ID:        &id,
		BuddyID:   t.BuddyID,
		BuddeeID:  t.BuddeeID,
		Note:      t.Note,
		Visible:   &visible,
		Status:    t.Status,
		UpdatedAt: &updatedAt,
	}
}
