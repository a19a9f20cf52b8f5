package handler

import (
	"net/http"
	"staff_attendance/internal/app/service"
	"staff_attendance/internal/common"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type StaffHandler struct {
	staffService *service.StaffService
}

func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

func (h *StaffHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffService.ListStaff(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, staff)
}

func (h *StaffHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	// A non-numeric id cannot be a staff id, same 404 as an unknown one.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, common.ErrNotFound.Error())
		return
	}

	if err := h.staffService.DeleteStaff(r.Context(), id); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Staff deleted successfully"})
}
