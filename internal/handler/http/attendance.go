package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/attendance"
	"github.com/talenthub-hr/hr-backend-go/internal/handler/http/response"
	attendanceservice "github.com/talenthub-hr/hr-backend-go/internal/service/attendance"
	employeeservice "github.com/talenthub-hr/hr-backend-go/internal/service/employee"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetTeamAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
	employeeService   *employeeservice.Service
}

func NewAttendanceHandler(
	attendanceService *attendanceservice.Service,
	employeeService *employeeservice.Service,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		employeeService:   employeeService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Check-in decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID

	record, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Check-out decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID

	record, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RecordFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if teamName := r.URL.Query().Get("team"); teamName != "" {
		filter.TeamName = &teamName
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if date := r.URL.Query().Get("date"); date != "" {
		if parsed, err := time.Parse("2006-01-02", date); err == nil {
			filter.Date = &parsed
		}
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			filter.StartDate = &parsed
		}
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			filter.EndDate = &parsed
		}
	}
	filter.Page, filter.Limit = parsePagination(r)

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, listMeta(filter.Page, filter.Limit, total))
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	history, err := h.attendanceService.GetEmployeeHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// GetTeamAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTeamAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Defaults to the requester's own team; the query param lets admins
	// look at any team.
	teamName := r.URL.Query().Get("team")
	if teamName == "" {
		emp, err := h.employeeService.GetByID(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		teamName = emp.TeamName
	}

	records, total, err := h.attendanceService.GetTeamAttendance(r.Context(), teamName)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{TotalItems: total})
}
