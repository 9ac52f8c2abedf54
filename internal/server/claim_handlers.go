package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/server/serializer"
	"github.com/astucampus/lostandfound/internal/server/service"
)

// claim contains all claim handlers.
type claim struct {
	db        database.Client
	lifecycle *service.Lifecycle
}

///// Submit
////
//

// Submit records a claim against an item. Student only.
func (h *claim) Submit(c echo.Context) error {
	record, err := h.lifecycle.SubmitClaim(c.Param("itemId"), currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Claim submitted successfully. Check notifications to upload your ID photo.",
		"claimId": record.ID,
	})
}

///// Pending
////
//

// Pending returns all pending claims with their item and claimant summaries,
// newest first. Admin only.
func (h *claim) Pending(c echo.Context) error {
	claims, err := h.db.FindClaimsByStatus(model.ClaimStatusPending)
	if err != nil {
		return err
	}

	render := make([]map[string]any, 0, len(claims))
	for _, record := range claims {
		item, err := h.db.FindItem(record.ItemID)
		if err != nil && !h.db.IsNotFound(err) {
			return err
		}
		claimant, err := h.db.FindUser(record.ClaimantID)
		if err != nil && !h.db.IsNotFound(err) {
			return err
		}
		render = append(render, serializer.PendingClaim(record, item, claimant))
	}

	return c.JSON(http.StatusOK, render)
}

///// Decide
////
//

// Decide approves or rejects a pending claim. Admin only.
func (h *claim) Decide(c echo.Context) error {
	var params struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, lferror.New("Could not get parameters."))
	}

	record, err := h.lifecycle.DecideClaim(c.Param("claimId"), params.Status, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Claim %s successfully", record.Status),
		"claim":   record,
	})
}
