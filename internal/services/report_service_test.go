package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/models"
	"github.com/kperez42/Celestia-sub000/internal/notify"
)

func newReportFixture(t *testing.T) (*gorm.DB, *ReportService, *recorderDispatcher) {
	t.Helper()
	db := openTestDB(t)
	recorder := &recorderDispatcher{}
	moderation := NewModerationService(db, recorder)
	return db, NewReportService(db, moderation), recorder
}

func fileReport(t *testing.T, db *gorm.DB, svc *ReportService, reported uuid.UUID) *models.Report {
	t.Helper()
	reporter := createAccount(t, db, models.ProfileStatusActive)
	report, err := svc.CreateReport(reporter.ID, CreateReportInput{
		ReportedUserID: reported,
		Reason:         "inappropriate messages",
	})
	require.NoError(t, err)
	return report
}

func TestCreateReport(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, reported.ID, report.ReportedUserID)
	assert.Nil(t, report.Resolution)
}

func TestCreateReportRequiresReason(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reporter := createAccount(t, db, models.ProfileStatusActive)
	reported := createAccount(t, db, models.ProfileStatusActive)

	_, err := svc.CreateReport(reporter.ID, CreateReportInput{
		ReportedUserID: reported.ID,
		Reason:         "   ",
	})
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestCreateReportUnknownAccount(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reporter := createAccount(t, db, models.ProfileStatusActive)
	_, err := svc.CreateReport(reporter.ID, CreateReportInput{
		ReportedUserID: uuid.New(),
		Reason:         "fake profile",
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResolveReportDismiss(t *testing.T) {
	db, svc, recorder := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	resolved, err := svc.ResolveReport(report.ID, models.ResolutionDismiss, "")
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.Resolution)
	assert.Equal(t, models.ResolutionDismiss, *resolved.Resolution)
	assert.NotNil(t, resolved.ResolvedAt)

	// Dismissal touches neither the account nor the user's inbox.
	got := reloadAccount(t, db, reported.ID)
	assert.Equal(t, models.ProfileStatusActive, got.ProfileStatus)
	assert.Empty(t, recorder.kinds())
}

func TestResolveReportBan(t *testing.T) {
	db, svc, recorder := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	_, err := svc.ResolveReport(report.ID, models.ResolutionBan, "verified scam profile")
	require.NoError(t, err)

	got := reloadAccount(t, db, reported.ID)
	assert.Equal(t, models.ProfileStatusBanned, got.ProfileStatus)
	assert.Equal(t, "verified scam profile", got.BanReason)
	assert.Equal(t, []notify.Kind{notify.KindBanned}, recorder.kinds())
}

func TestResolveReportWarn(t *testing.T) {
	db, svc, recorder := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	_, err := svc.ResolveReport(report.ID, models.ResolutionWarn, "first offense")
	require.NoError(t, err)

	got := reloadAccount(t, db, reported.ID)
	assert.Equal(t, 1, got.WarningCount)
	assert.Equal(t, models.ProfileStatusActive, got.ProfileStatus)
	assert.Equal(t, []notify.Kind{notify.KindWarned}, recorder.kinds())
}

func TestResolveReportSuspend(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	_, err := svc.ResolveReport(report.ID, models.ResolutionSuspend, "repeated spam")
	require.NoError(t, err)

	got := reloadAccount(t, db, reported.ID)
	assert.Equal(t, models.ProfileStatusSuspended, got.ProfileStatus)
	require.NotNil(t, got.SuspendedUntil)
}

func TestResolveReportExactlyOnce(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	_, err := svc.ResolveReport(report.ID, models.ResolutionDismiss, "")
	require.NoError(t, err)

	_, err = svc.ResolveReport(report.ID, models.ResolutionBan, "second thoughts")
	assert.ErrorIs(t, err, ErrReportAlreadyClosed)

	got := reloadAccount(t, db, reported.ID)
	assert.Equal(t, models.ProfileStatusActive, got.ProfileStatus)
}

func TestResolveReportRequiresReasonForSanctions(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	for _, resolution := range []models.ReportResolution{
		models.ResolutionWarn, models.ResolutionSuspend, models.ResolutionBan,
	} {
		_, err := svc.ResolveReport(report.ID, resolution, "  ")
		assert.ErrorIs(t, err, ErrReasonRequired, "resolution %s", resolution)
	}
}

func TestResolveReportInvalidResolution(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	_, err := svc.ResolveReport(report.ID, models.ReportResolution("escalate"), "reason")
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestResolveReportNotFound(t *testing.T) {
	_, svc, _ := newReportFixture(t)

	_, err := svc.ResolveReport(uuid.New(), models.ResolutionDismiss, "")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

// A failed account transition must roll the whole resolution back: the
// report stays pending and nothing is dispatched.
func TestResolveReportRollsBackOnMissingAccount(t *testing.T) {
	db, svc, recorder := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	report := fileReport(t, db, svc, reported.ID)

	// Hard-delete the reported account out from under the report.
	require.NoError(t, db.Unscoped().Delete(&models.Account{}, "id = ?", reported.ID).Error)

	_, err := svc.ResolveReport(report.ID, models.ResolutionBan, "scam profile")
	require.ErrorIs(t, err, ErrAccountNotFound)

	var got models.Report
	require.NoError(t, db.First(&got, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportStatusPending, got.Status)
	assert.Nil(t, got.Resolution)
	assert.Empty(t, recorder.kinds())
}

func TestListReportsFilterByStatus(t *testing.T) {
	db, svc, _ := newReportFixture(t)

	reported := createAccount(t, db, models.ProfileStatusActive)
	open := fileReport(t, db, svc, reported.ID)
	closed := fileReport(t, db, svc, reported.ID)
	_, err := svc.ResolveReport(closed.ID, models.ResolutionDismiss, "")
	require.NoError(t, err)

	pending, total, err := svc.ListReports(models.ReportStatusPending, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)

	all, total, err := svc.ListReports("", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}
