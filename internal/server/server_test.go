package server_test

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/stretchr/testify/assert"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/imaging"
	"github.com/astucampus/lostandfound/internal/mailer"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/server"
	"github.com/astucampus/lostandfound/internal/server/token"
)

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestAuthenticateMiddleware(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	//
	// No token.
	//

	r.GET("/api/items/my-items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"No token provided"}}`, r.Body.String())
	})

	//
	// Garbage token.
	//

	r.GET("/api/items/my-items").SetHeader(gofight.H{
		"Authorization": "Bearer garbage",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Invalid token"}}`, r.Body.String())
	})

	//
	// Valid token for a deleted user.
	//

	ghost := createStudent(ctrl, "ghost@campus.lan")
	header := authorization(ctrl, ghost)
	assert.NoError(t, ctrl.Database.Delete(ghost))

	r.GET("/api/items/my-items").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"No such user for given token"}}`, r.Body.String())
	})
}

func TestRequestRoleGate(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	student := createStudent(ctrl, "student@campus.lan")
	admin := createAdmin(ctrl)

	r.GET("/api/claims/pending").SetHeader(authorization(ctrl, student)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
			assert.JSONEq(t, `{"error":{"tag":"access-denied","message":"Access denied"}}`, r.Body.String())
		})

	r.GET("/api/claims/pending").SetHeader(authorization(ctrl, admin)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)
		})

	// Admins cannot submit claims.
	item := createItem(ctrl, student, model.ItemStatusPending)
	r.POST("/api/claims/"+item.ID).SetHeader(authorization(ctrl, admin)).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusForbidden, r.Code)
		})
}

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "lostandfound.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	uploads, err := imaging.NewStore(filename + ".uploads")
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Version:    "test",
		Database:   db,
		SigningKey: []byte("secret"),
		Mailer:     mailer.NewLog(),
		Uploads:    uploads,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
		os.RemoveAll(filename + ".uploads")
	}
}

func createStudent(ctrl server.Controller, email string) *model.User {
	return createUser(ctrl, email, model.RoleStudent)
}

func createAdmin(ctrl server.Controller) *model.User {
	return createUser(ctrl, "admin@campus.lan", model.RoleAdmin)
}

func createUser(ctrl server.Controller, email, role string) *model.User {
	var err error

	user := model.NewUser()
	user.Name = email[:len(email)-len("@campus.lan")]
	user.Email = email
	user.Role = role
	user.Password, err = argon2.GenerateFromPasswordString("password42", argon2.Default)
	if err != nil {
		panic(err)
	}

	if err = ctrl.Database.Save(user); err != nil {
		panic(err)
	}
	return user
}

func createItem(ctrl server.Controller, owner *model.User, status string) *model.Item {
	item := &model.Item{
		Type:        model.ItemTypeFound,
		Description: "Black scientific calculator with a cracked corner",
		Category:    "Calculator",
		Location:    "Library block B",
		ReportedAt:  time.Now().UTC(),
		Status:      status,
		OwnerID:     owner.ID,
		FinderID:    owner.ID,
	}
	if err := ctrl.Database.Save(item); err != nil {
		panic(err)
	}
	return item
}

func authorization(ctrl server.Controller, user *model.User) gofight.H {
	t, err := token.NewManager(ctrl.SigningKey).Issue(user)
	if err != nil {
		panic(err)
	}
	return gofight.H{"Authorization": "Bearer " + t}
}

func decode(body string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		panic(err)
	}
	return m
}

func jsonUnmarshal(body string, v any) error {
	return json.Unmarshal([]byte(body), v)
}
