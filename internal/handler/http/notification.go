package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// List implements NotificationHandler.
func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := notification.ListFilter{
		UnreadOnly: r.URL.Query().Get("unread_only") == "true",
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}

	notifications, total, err := h.notificationService.List(r.Context(), claimsEmployeeID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, notifications, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: int64(total),
		TotalPages: totalPages(int64(total), filter.Limit),
	})
}

// UnreadCount implements NotificationHandler.
func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(r.Context(), claimsEmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notification.UnreadCountResponse{Count: count})
}

// MarkAsRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), claimsEmployeeID(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllAsRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notificationService.MarkAllAsRead(r.Context(), claimsEmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notification.MarkAllResponse{Updated: updated})
}

// Delete implements NotificationHandler.
func (h *NotificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.notificationService.Delete(r.Context(), claimsEmployeeID(r), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification deleted", nil)
}
