package service

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"staff_attendance/internal/domain/repository"
	"staff_attendance/internal/platform/metrics"
	"strings"
	"time"
)

// AttendanceService decides, per user per day, whether a check-in is
// accepted and which status it gets. The decision is a function of the
// client address, any existing record for today, and the current
// time-of-day against two configured boundaries.
type AttendanceService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	allowedNets    []netip.Prefix
	lateAfter      time.Duration
	closeAfter     time.Duration
	now            func() time.Time // swappable in tests
}

func NewAttendanceService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	allowedNets []netip.Prefix,
	lateAfter, closeAfter time.Duration,
) *AttendanceService {
	return &AttendanceService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		allowedNets:    allowedNets,
		lateAfter:      lateAfter,
		closeAfter:     closeAfter,
		now:            time.Now,
	}
}

type MarkResult struct {
	Message string                 `json:"message"`
	Status  model.AttendanceStatus `json:"status"`
}

// Mark records a check-in for the authenticated subject.
//
// The location gate runs before everything else so an off-network attempt is
// denied even when the time would be valid. Both window comparisons are
// strictly greater-than: exactly 07:30:00 is Present, exactly 08:00:00 is
// Late but accepted.
func (s *AttendanceService) Mark(ctx context.Context, subjectEmail string, clientAddr netip.Addr) (*MarkResult, error) {
	if !s.addrAllowed(clientAddr) {
		metrics.CheckinsTotal.WithLabelValues("denied_location").Inc()
		return nil, common.ErrLocationDenied
	}

	user, err := s.userRepo.FindByEmail(ctx, subjectEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := s.now()
	today := dateOf(now)

	if _, err := s.attendanceRepo.FindByUserAndDate(ctx, user.ID, today); err == nil {
		metrics.CheckinsTotal.WithLabelValues("duplicate").Inc()
		return nil, common.ErrAlreadyMarked
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	tod := timeOfDay(now)
	if tod > s.closeAfter {
		metrics.CheckinsTotal.WithLabelValues("closed").Inc()
		return nil, common.ErrWindowClosed
	}

	status := model.StatusPresent
	if tod > s.lateAfter {
		status = model.StatusLate
	}

	rec := &model.AttendanceRecord{
		UserID:  user.ID,
		Date:    today,
		CheckIn: now,
		Status:  status,
	}
	if err := s.attendanceRepo.Create(ctx, rec); err != nil {
		if errors.Is(err, common.ErrAlreadyMarked) {
			// Lost the check-then-act race to a concurrent check-in; the
			// unique constraint made the other writer win.
			metrics.CheckinsTotal.WithLabelValues("duplicate").Inc()
			return nil, common.ErrAlreadyMarked
		}
		return nil, fmt.Errorf("failed to store attendance: %w", err)
	}

	metrics.CheckinsTotal.WithLabelValues(strings.ToLower(string(status))).Inc()
	return &MarkResult{Message: "Attendance marked", Status: status}, nil
}

func (s *AttendanceService) addrAllowed(addr netip.Addr) bool {
	for _, network := range s.allowedNets {
		if network.Contains(addr) {
			return true
		}
	}
	return false
}

// timeOfDay returns t's wall-clock offset from midnight in t's location,
// sub-second precision included.
func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// dateOf truncates t to its calendar date, keeping t's location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
