package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"staff_attendance/internal/domain/repository"
	"time"
)

// ReportService is read-only aggregation over stored attendance. It never
// writes; everything here derives from what the attendance engine recorded.
type ReportService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time // swappable in tests
}

func NewReportService(userRepo repository.UserRepository, attendanceRepo repository.AttendanceRepository) *ReportService {
	return &ReportService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

type AbsenteesReport struct {
	Date      string      `json:"date"`
	Absentees []StaffInfo `json:"absentees"`
}

type DailySummary struct {
	TotalStaff   int `json:"total_staff"`
	PresentCount int `json:"present_count"`
	LateCount    int `json:"late_count"`
	AbsentCount  int `json:"absent_count"`
}

type AttendanceEntry struct {
	Date    string                 `json:"date"`
	CheckIn string                 `json:"check_in"`
	Status  model.AttendanceStatus `json:"status"`
}

type StaffPercentage struct {
	FullName             string  `json:"full_name"`
	PresentDays          int     `json:"present_days"`
	LateDays             int     `json:"late_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

func (s *ReportService) Absentees(ctx context.Context) (*AbsenteesReport, error) {
	today := dateOf(s.now())
	users, err := s.attendanceRepo.AbsenteesForDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list absentees: %w", err)
	}

	absentees := make([]StaffInfo, 0, len(users))
	for _, u := range users {
		absentees = append(absentees, StaffInfo{ID: u.ID, FullName: u.FullName, Email: u.Email})
	}
	return &AbsenteesReport{Date: today.Format("2006-01-02"), Absentees: absentees}, nil
}

func (s *ReportService) DailySummary(ctx context.Context) (*DailySummary, error) {
	today := dateOf(s.now())

	staff, err := s.userRepo.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	present, late, err := s.attendanceRepo.CountStatusesForDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	return &DailySummary{
		TotalStaff:   len(staff),
		PresentCount: present,
		LateCount:    late,
		// Always derived, never queried; equals the absentee-set size.
		AbsentCount: len(staff) - present - late,
	}, nil
}

// MyAttendance lists the subject's own records, newest date first, with the
// check-in rendered as wall-clock time.
func (s *ReportService) MyAttendance(ctx context.Context, subjectEmail string) ([]AttendanceEntry, error) {
	user, err := s.userRepo.FindByEmail(ctx, subjectEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	records, err := s.attendanceRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	entries := make([]AttendanceEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, AttendanceEntry{
			Date:    rec.Date.Format("2006-01-02"),
			CheckIn: rec.CheckIn.Format("15:04:05"),
			Status:  rec.Status,
		})
	}
	return entries, nil
}

// AttendancePercentage reports, per staff member, attended days over total
// recorded days, rounded to two decimals. Present and Late both count as
// attended; a member with no records gets 0 rather than a division error.
func (s *ReportService) AttendancePercentage(ctx context.Context) ([]StaffPercentage, error) {
	counts, err := s.attendanceRepo.StatusCountsByStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}

	results := make([]StaffPercentage, 0, len(counts))
	for _, c := range counts {
		total := c.PresentDays + c.LateDays
		var pct float64
		if total > 0 {
			pct = round2(float64(c.PresentDays+c.LateDays) / float64(total) * 100)
		}
		results = append(results, StaffPercentage{
			FullName:             c.FullName,
			PresentDays:          c.PresentDays,
			LateDays:             c.LateDays,
			AttendancePercentage: pct,
		})
	}
	return results, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
