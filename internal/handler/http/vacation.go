package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http/response"
)

type VacationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type VacationHandlerImpl struct {
	vacationService vacation.Service
}

func NewVacationHandler(vacationService vacation.Service) VacationHandler {
	return &VacationHandlerImpl{vacationService: vacationService}
}

// Create implements VacationHandler.
func (h *VacationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req vacation.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create vacation request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.vacationService.Create(r.Context(), claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation request submitted", created)
}

// Get implements VacationHandler.
func (h *VacationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	request, err := h.vacationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// List implements VacationHandler. Manager-facing listing with optional
// employee_id and status filters.
func (h *VacationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := vacation.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     vacation.Status(r.URL.Query().Get("status")),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}

	requests, total, err := h.vacationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: int64(total),
		TotalPages: totalPages(int64(total), filter.Limit),
	})
}

// ListMine implements VacationHandler.
func (h *VacationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter := vacation.ListFilter{
		EmployeeID: claimsEmployeeID(r),
		Status:     vacation.Status(r.URL.Query().Get("status")),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}

	requests, total, err := h.vacationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: int64(total),
		TotalPages: totalPages(int64(total), filter.Limit),
	})
}

// Update implements VacationHandler.
func (h *VacationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	var req vacation.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update vacation request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.vacationService.Update(r.Context(), id, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request updated", updated)
}

// Approve implements VacationHandler.
func (h *VacationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	var req vacation.ReviewRequest
	if r.Body != nil {
		// Approval notes are optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	approved, err := h.vacationService.Approve(r.Context(), id, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request approved", approved)
}

// Reject implements VacationHandler.
func (h *VacationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	var req vacation.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject vacation request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rejected, err := h.vacationService.Reject(r.Context(), id, claimsEmployeeID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request rejected", rejected)
}

// Cancel implements VacationHandler.
func (h *VacationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	cancelled, err := h.vacationService.Cancel(r.Context(), id, claimsEmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request cancelled", cancelled)
}

// Delete implements VacationHandler. Only pending requests can be deleted.
func (h *VacationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vacation request ID is required", nil)
		return
	}

	if err := h.vacationService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request deleted", nil)
}
