package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

func newAppealFixture(t *testing.T) (*gorm.DB, *AppealService, *recorderDispatcher) {
	t.Helper()
	db := openTestDB(t)
	recorder := &recorderDispatcher{}
	moderation := NewModerationService(db, recorder)
	return db, NewAppealService(db, moderation), recorder
}

func TestSubmitAppealForBan(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)

	appeal, err := svc.SubmitAppeal(banned.ID, "  I believe this ban was issued by mistake, please review it.  ")
	require.NoError(t, err)

	assert.Equal(t, models.AppealTypeBan, appeal.Type)
	assert.Equal(t, models.AppealStatusPending, appeal.Status)
	assert.Equal(t, banned.BanReason, appeal.OriginalReason)
	// The stored message is trimmed.
	assert.Equal(t, "I believe this ban was issued by mistake, please review it.", appeal.AppealMessage)
}

func TestSubmitAppealForSuspension(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	suspended := createAccount(t, db, models.ProfileStatusSuspended)

	appeal, err := svc.SubmitAppeal(suspended.ID, "The suspension reason does not match anything I actually did.")
	require.NoError(t, err)

	assert.Equal(t, models.AppealTypeSuspension, appeal.Type)
	assert.Equal(t, suspended.ProfileStatusReason, appeal.OriginalReason)
}

func TestSubmitAppealMessageLength(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)

	// 29 characters fails, 30 passes. Surrounding whitespace does not count.
	tooShort := strings.Repeat("a", models.MinAppealMessageLen-1)
	_, err := svc.SubmitAppeal(banned.ID, tooShort)
	assert.ErrorIs(t, err, ErrAppealTooShort)

	_, err = svc.SubmitAppeal(banned.ID, "   "+tooShort+"   ")
	assert.ErrorIs(t, err, ErrAppealTooShort)

	exact := strings.Repeat("a", models.MinAppealMessageLen)
	_, err = svc.SubmitAppeal(banned.ID, exact)
	assert.NoError(t, err)
}

func TestSubmitAppealMessageLengthCountsRunes(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	suspended := createAccount(t, db, models.ProfileStatusSuspended)

	// 29 runes but 58 bytes. The limit is characters, not bytes.
	_, err := svc.SubmitAppeal(suspended.ID, strings.Repeat("é", models.MinAppealMessageLen-1))
	assert.ErrorIs(t, err, ErrAppealTooShort)

	_, err = svc.SubmitAppeal(suspended.ID, strings.Repeat("é", models.MinAppealMessageLen))
	assert.NoError(t, err)
}

func TestSubmitAppealRequiresSanction(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	for _, status := range []models.ProfileStatus{
		models.ProfileStatusPending,
		models.ProfileStatusActive,
		models.ProfileStatusRejected,
	} {
		account := createAccount(t, db, status)
		_, err := svc.SubmitAppeal(account.ID, "This sanction is unfair and I would like a human to review it.")
		assert.ErrorIs(t, err, ErrAppealNotEligible, "status %s", status)
	}
}

func TestSubmitAppealDuplicatePending(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)

	_, err := svc.SubmitAppeal(banned.ID, "First appeal, I believe the ban was a misunderstanding.")
	require.NoError(t, err)

	_, err = svc.SubmitAppeal(banned.ID, "Second appeal for the very same ban, filed impatiently.")
	assert.ErrorIs(t, err, ErrDuplicateAppeal)
}

func TestSubmitAppealAllowedAfterDenial(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)

	first, err := svc.SubmitAppeal(banned.ID, "First appeal, I believe the ban was a misunderstanding.")
	require.NoError(t, err)

	_, err = svc.ReviewAppeal(first.ID, false, "ban upheld")
	require.NoError(t, err)

	// Only a pending appeal blocks resubmission.
	_, err = svc.SubmitAppeal(banned.ID, "New appeal with additional context the first one lacked.")
	assert.NoError(t, err)
}

func TestReviewAppealApproveReinstates(t *testing.T) {
	db, svc, recorder := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)
	appeal, err := svc.SubmitAppeal(banned.ID, "I can demonstrate the reported conduct never happened.")
	require.NoError(t, err)

	reviewed, err := svc.ReviewAppeal(appeal.ID, true, "evidence checks out")
	require.NoError(t, err)
	assert.Equal(t, models.AppealStatusApproved, reviewed.Status)
	assert.NotNil(t, reviewed.ReviewedAt)

	got := reloadAccount(t, db, banned.ID)
	assert.Equal(t, models.ProfileStatusActive, got.ProfileStatus)
	assert.False(t, got.IsBanned)
	assert.True(t, got.Visible)
	assert.Equal(t, []notify.Kind{notify.KindReinstated}, recorder.kinds())
}

func TestReviewAppealDenyKeepsSanction(t *testing.T) {
	db, svc, recorder := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)
	appeal, err := svc.SubmitAppeal(banned.ID, "I can demonstrate the reported conduct never happened.")
	require.NoError(t, err)

	reviewed, err := svc.ReviewAppeal(appeal.ID, false, "evidence does not hold up")
	require.NoError(t, err)
	assert.Equal(t, models.AppealStatusDenied, reviewed.Status)

	got := reloadAccount(t, db, banned.ID)
	assert.Equal(t, models.ProfileStatusBanned, got.ProfileStatus)
	assert.True(t, got.IsBanned)
	assert.Empty(t, recorder.kinds())
}

func TestReviewAppealExactlyOnce(t *testing.T) {
	db, svc, _ := newAppealFixture(t)

	banned := createAccount(t, db, models.ProfileStatusBanned)
	appeal, err := svc.SubmitAppeal(banned.ID, "I can demonstrate the reported conduct never happened.")
	require.NoError(t, err)

	_, err = svc.ReviewAppeal(appeal.ID, false, "denied")
	require.NoError(t, err)

	_, err = svc.ReviewAppeal(appeal.ID, true, "changed my mind")
	assert.ErrorIs(t, err, ErrAppealAlreadyClosed)
}

func TestReviewAppealNotFound(t *testing.T) {
	_, svc, _ := newAppealFixture(t)

	_, err := svc.ReviewAppeal(uuid.New(), true, "")
	assert.ErrorIs(t, err, ErrAppealNotFound)
}
