package policy

import "staff_attendance/internal/domain/model"

// Action names an operation that a role may or may not perform.
type Action string

const (
	ActionRegisterStaff        Action = "register-staff"
	ActionMarkAttendance       Action = "mark-attendance"
	ActionViewOwnAttendance    Action = "view-own-attendance"
	ActionViewAbsentees        Action = "view-absentees"
	ActionViewDailySummary     Action = "view-daily-summary"
	ActionViewAllStaff         Action = "view-all-staff"
	ActionDeleteStaff          Action = "delete-staff"
	ActionAttendancePercentage Action = "view-attendance-percentage"
)

var rules = map[Action][]string{
	ActionRegisterStaff:        {model.RoleStaff, model.RoleAdmin, ""}, // open to anyone, authenticated or not
	ActionMarkAttendance:       {model.RoleStaff},
	ActionViewOwnAttendance:    {model.RoleStaff},
	ActionViewAbsentees:        {model.RoleAdmin},
	ActionViewDailySummary:     {model.RoleAdmin},
	ActionViewAllStaff:         {model.RoleAdmin},
	ActionDeleteStaff:          {model.RoleAdmin},
	ActionAttendancePercentage: {model.RoleAdmin},
}

// Allowed reports whether role may perform action. It is a pure function
// of its inputs; unknown actions and unknown roles are always denied.
func Allowed(role string, action Action) bool {
	allowed, ok := rules[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
