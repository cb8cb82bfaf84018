package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
)

func newProfileFixture(t *testing.T) (*gorm.DB, *ProfileService) {
	t.Helper()
	db := openTestDB(t)
	queue := NewQueueService(db)
	return db, NewProfileService(db, NewScreeningService(queue))
}

func TestUpdateProfileRescreensText(t *testing.T) {
	db, svc := newProfileFixture(t)
	queue := NewQueueService(db)

	account := createAccount(t, db, models.ProfileStatusActive)

	bio := "message me on whatsapp, number in my pics"
	_, err := svc.UpdateProfile(account.ID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)

	got := reloadAccount(t, db, account.ID)
	assert.Equal(t, bio, got.Bio)

	n, err := queue.CountForAccount(account.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpdateProfilePhotoOnlyEditSkipsScreening(t *testing.T) {
	db, svc := newProfileFixture(t)
	queue := NewQueueService(db)

	account := createAccount(t, db, models.ProfileStatusActive)

	_, err := svc.UpdateProfile(account.ID, UpdateProfileInput{
		Photos: []string{"https://cdn.test/a.jpg"},
	})
	require.NoError(t, err)

	n, err := queue.CountForAccount(account.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBrowseProfilesVisibility(t *testing.T) {
	db, svc := newProfileFixture(t)

	viewer := createAccount(t, db, models.ProfileStatusActive)
	visible := createAccount(t, db, models.ProfileStatusActive)
	createAccount(t, db, models.ProfileStatusPending)
	createAccount(t, db, models.ProfileStatusSuspended)
	createAccount(t, db, models.ProfileStatusBanned)

	accounts, err := svc.BrowseProfiles(viewer.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, visible.ID, accounts[0].ID)
}

func TestBrowseProfilesExcludesBlocksBothWays(t *testing.T) {
	db, svc := newProfileFixture(t)

	viewer := createAccount(t, db, models.ProfileStatusActive)
	blockedByViewer := createAccount(t, db, models.ProfileStatusActive)
	blockedViewer := createAccount(t, db, models.ProfileStatusActive)
	neutral := createAccount(t, db, models.ProfileStatusActive)

	require.NoError(t, svc.BlockUser(viewer.ID, blockedByViewer.ID))
	require.NoError(t, svc.BlockUser(blockedViewer.ID, viewer.ID))

	accounts, err := svc.BrowseProfiles(viewer.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, neutral.ID, accounts[0].ID)
}

func TestBlockUserRules(t *testing.T) {
	db, svc := newProfileFixture(t)

	a := createAccount(t, db, models.ProfileStatusActive)
	b := createAccount(t, db, models.ProfileStatusActive)

	assert.ErrorIs(t, svc.BlockUser(a.ID, a.ID), ErrSelfBlock)

	require.NoError(t, svc.BlockUser(a.ID, b.ID))
	assert.ErrorIs(t, svc.BlockUser(a.ID, b.ID), ErrAlreadyBlocked)

	require.NoError(t, svc.UnblockUser(a.ID, b.ID))
	assert.NoError(t, svc.BlockUser(a.ID, b.ID))
}
