package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astucampus/lostandfound/internal/model"
)

func TestRequestClaimSubmit(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	admin := createAdmin(ctrl)
	reporter := createStudent(ctrl, "reporter@campus.lan")
	claimant := createStudent(ctrl, "claimant@campus.lan")
	item := createItem(ctrl, reporter, model.ItemStatusPending)

	//
	// Unknown item.
	//

	r.POST("/api/claims/unknown-id").SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusNotFound, r.Code)
			assert.JSONEq(t, `{"error":{"message":"Item not found"}}`, r.Body.String())
		})

	//
	// Submit marks the item claimed.
	//

	var claimID string
	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusCreated, r.Code)

			body := decode(r.Body.String())
			claimID = body["claimId"].(string)
			assert.NotEmpty(t, claimID)
		})

	updated, err := ctrl.Database.FindItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusClaimed, updated.Status)

	claim, err := ctrl.Database.FindClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusPending, claim.Status)
	assert.Equal(t, claimant.ID, claim.ClaimantID)

	//
	// Claimant and admin got notified.
	//

	notifications, err := ctrl.Database.FindNotificationsByUser(claimant.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationClaimSubmitted, notifications[0].Type)
	assert.Equal(t, item.ID, notifications[0].RelatedItemID)

	notifications, err = ctrl.Database.FindNotificationsByUser(admin.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationClaimRequest, notifications[0].Type)

	//
	// Duplicate submission while the claim is pending.
	//

	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"conflict","message":"This item is no longer available for claiming"}}`, r.Body.String())
		})

	//
	// Another student cannot claim a claimed item either.
	//

	other := createStudent(ctrl, "other@campus.lan")
	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, other)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"conflict","message":"This item is no longer available for claiming"}}`, r.Body.String())
		})
}

func TestRequestClaimPending(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	admin := createAdmin(ctrl)
	reporter := createStudent(ctrl, "reporter@campus.lan")
	claimant := createStudent(ctrl, "claimant@campus.lan")
	item := createItem(ctrl, reporter, model.ItemStatusPending)

	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusCreated, r.Code)
		})

	//
	// Exactly one pending claim referencing (item, claimant).
	//

	r.GET("/api/claims/pending").SetHeader(authorization(ctrl, admin)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var claims []map[string]any
			require.NoError(t, jsonUnmarshal(r.Body.String(), &claims))
			require.Len(t, claims, 1)

			assert.Equal(t, "pending", claims[0]["status"])
			assert.Equal(t, item.ID, claims[0]["item"].(map[string]any)["id"])
			assert.Equal(t, claimant.ID, claims[0]["claimant"].(map[string]any)["id"])
		})
}

func TestRequestClaimDecide(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	admin := createAdmin(ctrl)
	reporter := createStudent(ctrl, "reporter@campus.lan")
	claimant := createStudent(ctrl, "claimant@campus.lan")

	submit := func() (itemID, claimID string) {
		item := createItem(ctrl, reporter, model.ItemStatusPending)
		r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, claimant)).
			Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				require.Equal(t, http.StatusCreated, r.Code)
				claimID = decode(r.Body.String())["claimId"].(string)
			})
		return item.ID, claimID
	}

	//
	// Approve resolves the item.
	//

	itemID, claimID := submit()
	r.PUT("/api/claims/"+claimID).SetHeader(authorization(ctrl, admin)).
		SetJSON(gofight.D{"status": "approved"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
			assert.Equal(t, "Claim approved successfully", decode(r.Body.String())["message"])
		})

	claim, err := ctrl.Database.FindClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusApproved, claim.Status)
	assert.Equal(t, admin.ID, claim.ProcessedBy)
	assert.NotNil(t, claim.ProcessedAt)

	item, err := ctrl.Database.FindItem(itemID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusResolved, item.Status)

	//
	// Deciding twice yields a conflict reporting the existing status.
	//

	r.PUT("/api/claims/"+claimID).SetHeader(authorization(ctrl, admin)).
		SetJSON(gofight.D{"status": "approved"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"conflict","message":"Claim already approved"}}`, r.Body.String())
		})

	//
	// Reject makes the item claimable again.
	//

	itemID, claimID = submit()
	r.PUT("/api/claims/"+claimID).SetHeader(authorization(ctrl, admin)).
		SetJSON(gofight.D{"status": "rejected"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
		})

	item, err = ctrl.Database.FindItem(itemID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusPending, item.Status)

	//
	// The claimant was notified of both outcomes.
	//

	notifications, err := ctrl.Database.FindNotificationsByUser(claimant.ID)
	require.NoError(t, err)
	types := make([]string, 0, len(notifications))
	for _, n := range notifications {
		types = append(types, n.Type)
	}
	assert.Contains(t, types, model.NotificationClaimApproved)
	assert.Contains(t, types, model.NotificationClaimRejected)

	//
	// Invalid decision value.
	//

	_, claimID = submit()
	r.PUT("/api/claims/"+claimID).SetHeader(authorization(ctrl, admin)).
		SetJSON(gofight.D{"status": "maybe"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"message":"Invalid status. Must be 'approved' or 'rejected'"}}`, r.Body.String())
		})

	//
	// Unknown claim.
	//

	r.PUT("/api/claims/unknown-id").SetHeader(authorization(ctrl, admin)).
		SetJSON(gofight.D{"status": "approved"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusNotFound, r.Code)
			assert.JSONEq(t, `{"error":{"message":"Claim not found"}}`, r.Body.String())
		})
}

func TestRequestClaimDecideWithDeletedItem(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	admin := createAdmin(ctrl)
	reporter := createStudent(ctrl, "reporter@campus.lan")
	claimant := createStudent(ctrl, "claimant@campus.lan")
	item := createItem(ctrl, reporter, model.ItemStatusPending)

	var claimID string
	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			require.Equal(t, http.StatusCreated, r.Code)
			claimID = decode(r.Body.String())["claimId"].(string)
		})

	// Owner deletes the item while the claim is pending.
	r.DELETE("/api/items/"+item.ID).SetHeader(authorization(ctrl, reporter)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			require.Equal(t, http.StatusOK, r.Code)
		})

	// The decision still goes through.
	r.PUT("/api/claims/"+claimID).SetHeader(authorization(ctrl, admin)).
		SetJSON(gofight.D{"status": "approved"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
		})

	claim, err := ctrl.Database.FindClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusApproved, claim.Status)
}

