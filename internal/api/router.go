package api

import (
	"database/sql"
	"net/http"
	"staff_attendance/internal/api/handler"
	appMiddleware "staff_attendance/internal/api/middleware"
	"staff_attendance/internal/app/service"
	"staff_attendance/internal/common"
	"staff_attendance/internal/common/security"
	"staff_attendance/internal/domain/policy"
	"staff_attendance/internal/platform/cache"
	"staff_attendance/internal/platform/config"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	redisClient *redis.Client,
	tokens *security.TokenService,
	authService *service.AuthService,
	attendanceService *service.AttendanceService,
	reportService *service.ReportService,
	staffService *service.StaffService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses a bearer token when present and stashes the verification
	// result in the context; Authenticator decides per route group.
	r.Use(jwtauth.Verifier(tokens.Auth()))

	authHandler := handler.NewAuthHandler(authService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	reportHandler := handler.NewReportHandler(reportService)
	staffHandler := handler.NewStaffHandler(staffService)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "School Attendance System Running"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]string{"status": "ok", "database": "up", "redis": "up"}
		status := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			health["status"] = "unhealthy"
			health["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if !cache.Healthy(r.Context(), redisClient) {
			health["redis"] = "down" // degraded, not unhealthy: the rate limiter fails open
		}
		common.RespondWithJSON(w, status, health)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Public auth surface; the credential-guessing endpoints are rate
	// limited per client address.
	limit := appMiddleware.RateLimit(redisClient, cfg.AuthRatePerMin)
	r.Post("/register", authHandler.Register)
	r.With(limit).Post("/login", authHandler.Login)
	r.With(limit).Post("/forgot-password", authHandler.ForgotPassword)
	r.With(limit).Post("/reset-password", authHandler.ResetPassword)

	// Everything below requires a valid bearer token; individual routes
	// are additionally gated by the access policy.
	r.Group(func(ar chi.Router) {
		ar.Use(appMiddleware.Authenticator)

		ar.Get("/me", authHandler.Me)

		ar.With(appMiddleware.RequirePermission(policy.ActionMarkAttendance)).
			Post("/mark-attendance", attendanceHandler.Mark)
		ar.With(appMiddleware.RequirePermission(policy.ActionViewOwnAttendance)).
			Get("/my-attendance", reportHandler.MyAttendance)

		ar.With(appMiddleware.RequirePermission(policy.ActionViewAbsentees)).
			Get("/absentees", reportHandler.Absentees)
		ar.With(appMiddleware.RequirePermission(policy.ActionViewDailySummary)).
			Get("/daily-summary", reportHandler.DailySummary)
		ar.With(appMiddleware.RequirePermission(policy.ActionViewAllStaff)).
			Get("/all-staff", staffHandler.ListStaff)
		ar.With(appMiddleware.RequirePermission(policy.ActionAttendancePercentage)).
			Get("/attendance-percentage", reportHandler.AttendancePercentage)
		ar.With(appMiddleware.RequirePermission(policy.ActionDeleteStaff)).
			Delete("/delete-staff/{id}", staffHandler.DeleteStaff)
	})

	return r
}
