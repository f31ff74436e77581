package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/report"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Statistics(w http.ResponseWriter, r *http.Request)
	MyStatistics(w http.ResponseWriter, r *http.Request)
	MyCalendar(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Statistics implements ReportHandler. Manager-facing; the employee comes
// from the URL.
func (h *ReportHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	h.statistics(w, r, employeeID)
}

// MyStatistics implements ReportHandler.
func (h *ReportHandlerImpl) MyStatistics(w http.ResponseWriter, r *http.Request) {
	h.statistics(w, r, claimsEmployeeID(r))
}

func (h *ReportHandlerImpl) statistics(w http.ResponseWriter, r *http.Request, employeeID string) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		response.BadRequest(w, "year is required as a positive integer", nil)
		return
	}

	month := 0
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			response.BadRequest(w, "month must be between 1 and 12", nil)
			return
		}
	}

	stats, err := h.reportService.GetStatistics(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// MyCalendar implements ReportHandler.
func (h *ReportHandlerImpl) MyCalendar(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRangeQuery(w, r)
	if !ok {
		return
	}

	entries, err := h.reportService.GetCalendar(r.Context(), claimsEmployeeID(r), startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
