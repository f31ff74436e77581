package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/location"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LocationHandlerImpl struct {
	locationService location.Service
}

func NewLocationHandler(locationService location.Service) LocationHandler {
	return &LocationHandlerImpl{locationService: locationService}
}

// Create implements LocationHandler.
func (h *LocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req location.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create location decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.locationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created successfully", created)
}

// Get implements LocationHandler.
func (h *LocationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Location ID is required", nil)
		return
	}

	loc, err := h.locationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, loc)
}

// List implements LocationHandler.
func (h *LocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}
