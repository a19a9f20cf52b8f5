package service

import (
	"context"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService() (*ReportService, *fakeUserRepo, *fakeAttendanceRepo) {
	users := newFakeUserRepo()
	records := newFakeAttendanceRepo(users)
	return NewReportService(users, records), users, records
}

func seedRecord(t *testing.T, records *fakeAttendanceRepo, userID int64, checkIn time.Time, status model.AttendanceStatus) {
	t.Helper()
	rec := &model.AttendanceRecord{UserID: userID, Date: dateOf(checkIn), CheckIn: checkIn, Status: status}
	require.NoError(t, records.Create(context.Background(), rec))
}

func TestDailySummaryMatchesAbsentees(t *testing.T) {
	svc, users, records := newTestReportService()

	early := seedStaff(t, users, "early@school.com")
	tardy := seedStaff(t, users, "tardy@school.com")
	missing := seedStaff(t, users, "missing@school.com")

	day := time.Date(2025, 3, 10, 7, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return day }

	seedRecord(t, records, early.ID, day, model.StatusPresent)
	seedRecord(t, records, tardy.ID, day.Add(45*time.Minute), model.StatusLate)
	// A record from yesterday must not leak into today's summary.
	seedRecord(t, records, missing.ID, day.AddDate(0, 0, -1), model.StatusPresent)

	summary, err := svc.DailySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalStaff)
	assert.Equal(t, 1, summary.PresentCount)
	assert.Equal(t, 1, summary.LateCount)
	assert.Equal(t, 1, summary.AbsentCount)

	report, err := svc.Absentees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", report.Date)
	require.Len(t, report.Absentees, summary.AbsentCount)
	assert.Equal(t, missing.ID, report.Absentees[0].ID)
	assert.Equal(t, missing.Email, report.Absentees[0].Email)
}

func TestDailySummaryNoStaff(t *testing.T) {
	svc, _, _ := newTestReportService()
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	}

	summary, err := svc.DailySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalStaff)
	assert.Equal(t, 0, summary.AbsentCount)

	report, err := svc.Absentees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Absentees)
}

func TestMyAttendanceOrderingAndFormat(t *testing.T) {
	svc, users, records := newTestReportService()
	staff := seedStaff(t, users, "staff@school.com")

	seedRecord(t, records, staff.ID, time.Date(2025, 3, 10, 7, 12, 5, 0, time.Local), model.StatusPresent)
	seedRecord(t, records, staff.ID, time.Date(2025, 3, 12, 7, 45, 30, 0, time.Local), model.StatusLate)
	seedRecord(t, records, staff.ID, time.Date(2025, 3, 11, 6, 59, 0, 0, time.Local), model.StatusPresent)

	entries, err := svc.MyAttendance(context.Background(), staff.Email)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest date first.
	assert.Equal(t, "2025-03-12", entries[0].Date)
	assert.Equal(t, "2025-03-11", entries[1].Date)
	assert.Equal(t, "2025-03-10", entries[2].Date)

	assert.Equal(t, "07:45:30", entries[0].CheckIn)
	assert.Equal(t, model.StatusLate, entries[0].Status)
	assert.Equal(t, "06:59:00", entries[1].CheckIn)
}

func TestMyAttendanceUnknownSubject(t *testing.T) {
	svc, _, _ := newTestReportService()

	_, err := svc.MyAttendance(context.Background(), "ghost@school.com")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAttendancePercentage(t *testing.T) {
	svc, users, records := newTestReportService()

	regular := seedStaff(t, users, "regular@school.com")
	sleeper := seedStaff(t, users, "sleeper@school.com")
	fresh := seedStaff(t, users, "fresh@school.com")

	base := time.Date(2025, 3, 10, 7, 0, 0, 0, time.Local)
	seedRecord(t, records, regular.ID, base, model.StatusPresent)
	seedRecord(t, records, regular.ID, base.AddDate(0, 0, 1), model.StatusPresent)
	seedRecord(t, records, regular.ID, base.AddDate(0, 0, 2), model.StatusLate)
	seedRecord(t, records, sleeper.ID, base.Add(50*time.Minute), model.StatusLate)

	// Entries come back in staff id order: regular, sleeper, fresh.
	results, err := svc.AttendancePercentage(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 2, results[0].PresentDays)
	assert.Equal(t, 1, results[0].LateDays)
	assert.InDelta(t, 100.0, results[0].AttendancePercentage, 0.001)

	assert.Equal(t, 0, results[1].PresentDays)
	assert.Equal(t, 1, results[1].LateDays)
	assert.InDelta(t, 100.0, results[1].AttendancePercentage, 0.001)

	// No records: percentage is 0, not a division error.
	assert.Equal(t, fresh.FullName, results[2].FullName)
	assert.Equal(t, 0, results[2].PresentDays)
	assert.Equal(t, 0, results[2].LateDays)
	assert.Zero(t, results[2].AttendancePercentage)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, round2(200.0/3.0))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 100.0, round2(100))
}
