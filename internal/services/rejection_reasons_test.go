package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionReasonCatalog(t *testing.T) {
	codes := []string{
		"no_face_photo", "inappropriate_photos", "fake_photos",
		"incomplete_bio", "underage", "spam", "offensive_content",
		"low_quality_photos", "contact_info_bio", "multiple_accounts",
	}

	for _, code := range codes {
		reason, ok := RejectionReasonFor(code)
		require.True(t, ok, "missing catalog entry for %q", code)
		assert.Equal(t, code, reason.Code)
		assert.NotEmpty(t, reason.Message)
		assert.NotEmpty(t, reason.FixInstructions)
	}

	_, ok := RejectionReasonFor("not_a_code")
	assert.False(t, ok)

	assert.Len(t, RejectionReasons(), len(codes))
}

func TestAppendAdminNote(t *testing.T) {
	instructions := "Add at least one clear photo."

	assert.Equal(t, instructions, AppendAdminNote(instructions, ""))

	got := AppendAdminNote(instructions, "Please retake")
	assert.Equal(t, "Add at least one clear photo.\n\nAdditional Note from Admin:\nPlease retake", got)
}
