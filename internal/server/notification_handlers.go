package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/model"
)

// notification contains all notification handlers.
type notification struct {
	db database.Client
}

///// Create
////
//

// Create records a manual notification for a user. Admin only.
func (h *notification) Create(c echo.Context) error {
	var params struct {
		UserID        string `json:"userId"`
		Title         string `json:"title"`
		Body          string `json:"body"`
		Type          string `json:"type"`
		RelatedItemID string `json:"relatedItemId"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get parameters."))
	}

	if params.UserID == "" || params.Title == "" || params.Body == "" {
		return lferror.BadRequest("Missing required fields (userId, title, body)")
	}
	if params.Type == "" {
		params.Type = model.NotificationClaimUpdate
	}

	record := &model.Notification{
		UserID:        params.UserID,
		Title:         params.Title,
		Body:          params.Body,
		Type:          params.Type,
		RelatedItemID: params.RelatedItemID,
	}
	if err := h.db.Save(record); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Notification created successfully",
		"notification": record,
	})
}

///// List
////
//

// List returns the caller's notifications, newest first.
func (h *notification) List(c echo.Context) error {
	notifications, err := h.db.FindNotificationsByUser(currentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notifications)
}

///// Unread count
////
//

// UnreadCount returns the number of unread notifications of the caller.
func (h *notification) UnreadCount(c echo.Context) error {
	count, err := h.db.CountUnreadNotifications(currentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"unreadCount": count})
}

///// Mark read
////
//

// MarkRead flips the read flag of one of the caller's notifications.
func (h *notification) MarkRead(c echo.Context) error {
	record, err := h.db.FindNotificationByUser(c.Param("id"), currentUser(c).ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return lferror.NotFound("Notification not found")
		}
		return err
	}

	record.Read = true
	if err := h.db.Save(record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Marked as read"})
}
