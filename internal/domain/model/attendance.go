package model

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusLate    AttendanceStatus = "Late"
)

// AttendanceRecord is one check-in for one user on one calendar date.
// At most one record exists per (user, date); records are immutable once
// written and only disappear through a cascading staff deletion.
type AttendanceRecord struct {
	ID      int64            `json:"id"`
	UserID  int64            `json:"user_id"`
	Date    time.Time        `json:"date"` // Calendar date of CheckIn in server-local time
	CheckIn time.Time        `json:"check_in"`
	Status  AttendanceStatus `json:"status"`
}

// StaffStatusCounts is one staff member's attendance record tally, split by
// status. Feeds the attendance percentage report.
type StaffStatusCounts struct {
	UserID      int64  `json:"user_id"`
	FullName    string `json:"full_name"`
	PresentDays int    `json:"present_days"`
	LateDays    int    `json:"late_days"`
}
