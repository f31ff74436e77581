package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http/response"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Assign(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	Reassign(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	MyAssignments(w http.ResponseWriter, r *http.Request)

	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// Create implements ShiftHandler.
func (h *ShiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.CreateShift(r.Context(), claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", created)
}

// Get implements ShiftHandler.
func (h *ShiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	sh, err := h.shiftService.GetShift(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sh)
}

// List implements ShiftHandler. Requires start_date and end_date query
// parameters; location_id is optional.
func (h *ShiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRangeQuery(w, r)
	if !ok {
		return
	}

	shifts, err := h.shiftService.ListShifts(r.Context(), startDate, endDate, r.URL.Query().Get("location_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// Update implements ShiftHandler.
func (h *ShiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.UpdateShift(r.Context(), id, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", updated)
}

// Delete implements ShiftHandler.
func (h *ShiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// Assign implements ShiftHandler.
func (h *ShiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "id")
	if shiftID == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	var req shift.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.Assign(r.Context(), shiftID, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned successfully", created)
}

// Unassign implements ShiftHandler.
func (h *ShiftHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.shiftService.Unassign(r.Context(), assignmentID, claimsEmployeeID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift unassigned successfully", nil)
}

// Reassign implements ShiftHandler.
func (h *ShiftHandlerImpl) Reassign(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	var req shift.ReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reassign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.Reassign(r.Context(), assignmentID, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift reassigned successfully", updated)
}

// Confirm implements ShiftHandler.
func (h *ShiftHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	updated, err := h.shiftService.Confirm(r.Context(), assignmentID, claimsEmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift confirmed successfully", updated)
}

// Decline implements ShiftHandler.
func (h *ShiftHandlerImpl) Decline(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	var req shift.DeclineRequest
	if r.Body != nil {
		// Reason body is optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	updated, err := h.shiftService.Decline(r.Context(), assignmentID, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift declined", updated)
}

// ClockIn implements ShiftHandler.
func (h *ShiftHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	updated, err := h.shiftService.ClockIn(r.Context(), assignmentID, claimsEmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", updated)
}

// ClockOut implements ShiftHandler.
func (h *ShiftHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	updated, err := h.shiftService.ClockOut(r.Context(), assignmentID, claimsEmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", updated)
}

// MyAssignments implements ShiftHandler.
func (h *ShiftHandlerImpl) MyAssignments(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRangeQuery(w, r)
	if !ok {
		return
	}

	// End of range is exclusive at the following midnight.
	assignments, err := h.shiftService.ListEmployeeAssignments(r.Context(), claimsEmployeeID(r), startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, assignments)
}

// CreateType implements ShiftHandler.
func (h *ShiftHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create shift type decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.CreateShiftType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift type created successfully", created)
}

// ListTypes implements ShiftHandler.
func (h *ShiftHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.shiftService.ListShiftTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

func dateRangeQuery(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	startDate, okStart := validator.IsValidDate(r.URL.Query().Get("start_date"))
	endDate, okEnd := validator.IsValidDate(r.URL.Query().Get("end_date"))
	if !okStart || !okEnd {
		response.BadRequest(w, "start_date and end_date are required as YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}
