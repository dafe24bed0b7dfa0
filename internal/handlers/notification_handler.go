package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/repositories"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications lists the actor's notifications newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := h.notificationRepository.GetByRecipientID(currentUserID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// GetUnreadCount returns how many of the actor's notifications are unread
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the actor's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(uint(notificationID), currentUserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked as read"})
}

// MarkAllAsRead marks all of the actor's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all notifications marked as read"})
}
