package handler

import (
	"net"
	"net/http"
	"net/netip"
	"staff_attendance/internal/api/middleware"
	"staff_attendance/internal/app/service"
	"staff_attendance/internal/common"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), subject, clientAddr(r))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

// clientAddr parses the request's client address. RealIP has already
// substituted X-Forwarded-For / X-Real-IP into RemoteAddr when present.
// An unparseable address yields the zero Addr, which no allowed network
// contains, so the check-in is denied.
func clientAddr(r *http.Request) netip.Addr {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}
