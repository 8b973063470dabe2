package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "peopledesk/pkg/domain-errors"
)

func TestNewTouchpointValidation(t *testing.T) {
	now := time.Now()

	_, err := NewTouchpoint(0, 2, "note", true, StatusDraft, now)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewTouchpoint(1, 2, "", true, StatusDraft, now)
	require.Error(t, err)

	_, err = NewTouchpoint(1, 2, "note", true, TouchpointStatus("PENDING"), now)
	require.Error(t, err)

	tp, err := NewTouchpoint(1, 2, "first week check-in", false, StatusDraft, now)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, tp.Status)
	assert.False(t, tp.Deleted)
	assert.Equal(t, now, tp.CreatedAt)
	assert.Equal(t, now, tp.UpdatedAt)
}

func TestSubmitIsOneWay(t *testing.T) {
	now := time.Now()
	tp, err := NewTouchpoint(1, 2, "note", true, StatusDraft, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, tp.Submit(later))
	assert.Equal(t, StatusSubmitted, tp.Status)
	assert.Equal(t, later, tp.UpdatedAt)

	err = tp.Submit(later.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestVisibleToBuddee(t *testing.T) {
	now := time.Now()
	tp, err := NewTouchpoint(1, 2, "note", true, StatusDraft, now)
	require.NoError(t, err)

	// Drafts are never disclosed, visible or not.
	assert.False(t, tp.VisibleToBuddee())

	require.NoError(t, tp.Submit(now))
	assert.True(t, tp.VisibleToBuddee())

	tp.Visible = false
	assert.False(t, tp.VisibleToBuddee())

	tp.Visible = true
	tp.Deleted = true
	assert.False(t, tp.VisibleToBuddee())
}

func TestApplyPatchPreservesNoteWhenAbsent(t *testing.T) {
	now := time.Now()
	tp, err := NewTouchpoint(1, 2, "original", true, StatusDraft, now)
	require.NoError(t, err)

	later := now.Add(time.Minute)
	tp.ApplyPatch(DraftPatch{Visible: false}, later)
	assert.Equal(t, "original", tp.Note)
	assert.False(t, tp.Visible)
	assert.Equal(t, later, tp.UpdatedAt)

	edited := "edited"
	tp.ApplyPatch(DraftPatch{Note: &edited, Visible: true}, later.Add(time.Minute))
	assert.Equal(t, "edited", tp.Note)
	assert.True(t, tp.Visible)
}
