package handler

import (
	"net/http"
	"staff_attendance/internal/api/middleware"
	"staff_attendance/internal/app/service"
	"staff_attendance/internal/common"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Absentees(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Absentees(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.DailySummary(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) MyAttendance(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	entries, err := h.reportService.MyAttendance(r.Context(), subject)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *ReportHandler) AttendancePercentage(w http.ResponseWriter, r *http.Request) {
	results, err := h.reportService.AttendancePercentage(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, results)
}
