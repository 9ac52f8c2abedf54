package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/imaging"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/notifier"
	"github.com/astucampus/lostandfound/internal/server/serializer"
)

// claimdetail contains all claim-detail handlers.
type claimdetail struct {
	db         database.Client
	uploads    *imaging.Store
	dispatcher *notifier.Notifier
}

///// Reply
////
//

// Reply attaches supporting evidence (free text and/or ID photo) to the
// caller's latest pending claim. Student only.
func (h *claimdetail) Reply(c echo.Context) error {
	user := currentUser(c)

	latest, err := h.db.FindLatestPendingClaimByClaimant(user.ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return lferror.BadRequest("No active claim found")
		}
		return err
	}

	imagePath, _, err := storeImage(c, h.uploads, "image")
	if err != nil {
		return err
	}

	detail := &model.ClaimDetail{
		ClaimID:   latest.ID,
		UserID:    user.ID,
		Content:   c.FormValue("content"),
		ImagePath: imagePath,
	}
	if err := h.db.Save(detail); err != nil {
		return err
	}

	// Best-effort admin alert.
	if admins, err := h.db.FindUsersByRole(model.RoleAdmin); err == nil {
		h.dispatcher.NotifyAll(admins,
			"New Claim Details Received",
			fmt.Sprintf("%s sent ID/details for their claim", user.Name),
			model.NotificationClaimUpdate, latest.ItemID)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Details sent successfully"})
}

///// List by claim
////
//

// ListByClaim returns all details attached to a claim, newest first. Admin only.
func (h *claimdetail) ListByClaim(c echo.Context) error {
	details, err := h.db.FindClaimDetailsByClaim(c.Param("claimId"))
	if err != nil {
		return err
	}

	render := make([]map[string]any, 0, len(details))
	for _, detail := range details {
		submitter, err := h.db.FindUser(detail.UserID)
		if err != nil && !h.db.IsNotFound(err) {
			return err
		}
		render = append(render, serializer.ClaimDetail(detail, submitter))
	}

	return c.JSON(http.StatusOK, render)
}
