package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astucampus/lostandfound/internal/model"
)

func TestRequestClaimDetailReply(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	admin := createAdmin(ctrl)
	reporter := createStudent(ctrl, "reporter@campus.lan")
	claimant := createStudent(ctrl, "claimant@campus.lan")

	//
	// No active claim.
	//

	r.POST("/api/claimDetails/reply").SetHeader(authorization(ctrl, claimant)).
		SetForm(gofight.H{"content": "It has my name engraved"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, `{"error":{"message":"No active claim found"}}`, r.Body.String())
		})

	//
	// Reply attaches to the latest pending claim.
	//

	item := createItem(ctrl, reporter, model.ItemStatusPending)
	var claimID string
	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			require.Equal(t, http.StatusCreated, r.Code)
			claimID = decode(r.Body.String())["claimId"].(string)
		})

	r.POST("/api/claimDetails/reply").SetHeader(authorization(ctrl, claimant)).
		SetForm(gofight.H{"content": "It has my name engraved"}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusCreated, r.Code)
			assert.JSONEq(t, `{"message":"Details sent successfully"}`, r.Body.String())
		})

	details, err := ctrl.Database.FindClaimDetailsByClaim(claimID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, claimant.ID, details[0].UserID)
	assert.Equal(t, "It has my name engraved", details[0].Content)

	//
	// Admin reads the details.
	//

	r.GET("/api/claimDetails/claim/"+claimID+"/details").SetHeader(authorization(ctrl, admin)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			var render []map[string]any
			require.NoError(t, jsonUnmarshal(r.Body.String(), &render))
			require.Len(t, render, 1)
			assert.Equal(t, claimant.Name, render[0]["user"].(map[string]any)["name"])
		})

	//
	// Students cannot read claim details.
	//

	r.GET("/api/claimDetails/claim/"+claimID+"/details").SetHeader(authorization(ctrl, claimant)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
		})
}
