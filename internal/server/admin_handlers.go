package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/model"
)

// admin contains the admin dashboard handlers.
type admin struct {
	db database.Client
}

///// Stats
////
//

// Stats returns the item counters shown on the admin dashboard.
func (h *admin) Stats(c echo.Context) error {
	totalLost, err := h.db.CountItemsByType(model.ItemTypeLost)
	if err != nil {
		return err
	}
	totalFound, err := h.db.CountItemsByType(model.ItemTypeFound)
	if err != nil {
		return err
	}
	totalClaimed, err := h.db.CountItemsByStatus(model.ItemStatusClaimed)
	if err != nil {
		return err
	}
	totalResolved, err := h.db.CountItemsByStatus(model.ItemStatusResolved)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalLost":     totalLost,
		"totalFound":    totalFound,
		"totalClaimed":  totalClaimed,
		"totalResolved": totalResolved,
	})
}
