package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckinsTotal counts attendance check-in attempts by outcome. Status is
	// "present" or "late" for accepted check-ins, and "duplicate", "closed" or
	// "denied_location" for rejected ones.
	CheckinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_checkins_total",
		Help: "Attendance check-in attempts by outcome.",
	}, []string{"status"})

	// LoginsTotal counts login attempts by result ("success" or "failure").
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// TokensIssued counts access tokens handed out after successful logins.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Access tokens issued.",
	})
)
