package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "peopledesk/pkg/domain-errors"
)

func TestCreatePairsRequestNormalizeDeduplicates(t *testing.T) {
	req := CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4, 5, 4, 6, 5}}
	req.Normalize()
	assert.Equal(t, []int64{4, 5, 6}, req.BuddeeIDs)
}

func TestCreatePairsRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  CreatePairsRequest
		msg  string
	}{
		{"missing buddy", CreatePairsRequest{BuddeeIDs: []int64{4}}, "buddyId is required"},
		{"empty buddees", CreatePairsRequest{BuddyID: 1}, "buddeeIds cannot be empty"},
		{"negative buddee", CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{-4}}, "buddeeIds must be positive ids"},
		{"self pair", CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4, 1}}, "a buddy cannot be paired with themselves"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			assert.Equal(t, tc.msg, dErrors.MessageOf(err))
		})
	}

	valid := CreatePairsRequest{BuddyID: 1, BuddeeIDs: []int64{4, 5}}
	assert.NoError(t, valid.Validate())
}

func TestTouchpointRequestValidate(t *testing.T) {
	req := TouchpointRequest{BuddyID: 1, BuddeeID: 4, Note: "   "}
	req.Normalize()
	err := req.Validate()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	req.Note = " settled in well "
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "settled in well", req.Note)
}

func TestDraftPatchValidate(t *testing.T) {
	blank := "   "
	patch := DraftPatch{Note: &blank, Visible: true}
	patch.Normalize()
	err := patch.Validate()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	// Absent note is a valid patch; it preserves the stored note.
	patch = DraftPatch{Visible: false}
	patch.Normalize()
	assert.NoError(t, patch.Validate())
}
