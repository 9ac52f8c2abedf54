package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/imaging"
	"github.com/astucampus/lostandfound/internal/mailer"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/notifier"
	"github.com/astucampus/lostandfound/internal/server/middlewares"
	"github.com/astucampus/lostandfound/internal/server/service"
	"github.com/astucampus/lostandfound/internal/server/token"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Database database.Client
	// JWT params
	SigningKey []byte
	// Collaborators
	Mailer  mailer.Mailer
	Push    notifier.PushSender // nil disables push relay
	Uploads *imaging.Store
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	tokens := token.NewManager(ctrl.SigningKey)
	dispatcher := notifier.New(ctrl.Database, ctrl.Push)

	authenticated := middlewares.Authenticate(ctrl.Database, tokens)
	adminOnly := middlewares.RequireRole(model.RoleAdmin)
	studentOnly := middlewares.RequireRole(model.RoleStudent)

	////////////
	// Router //
	////////////

	engine.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	if ctrl.Uploads != nil {
		engine.Static("/uploads", ctrl.Uploads.Dir())
	}

	api := engine.Group("/api")

	//
	// auth handlers
	//
	auth := &auth{
		users: service.NewUser(ctrl.Database, tokens, ctrl.Mailer),
	}
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/forgot-password", auth.ForgotPassword)
	api.POST("/auth/verify-otp", auth.VerifyOTP)
	api.POST("/auth/reset-password", auth.ResetPassword)
	api.POST("/auth/update-device-token", auth.UpdateDeviceToken, authenticated)

	//
	// item handlers
	//
	item := &item{
		db:      ctrl.Database,
		uploads: ctrl.Uploads,
	}
	api.POST("/items/report", item.Report, authenticated)
	api.GET("/items/search", item.Search)
	api.GET("/items/my-items", item.MyItems, authenticated)
	api.GET("/items", item.List, authenticated, adminOnly)
	api.PATCH("/items/:id", item.Update, authenticated)
	api.DELETE("/items/:id", item.Delete, authenticated)

	//
	// claim handlers
	//
	claim := &claim{
		db:        ctrl.Database,
		lifecycle: service.NewLifecycle(ctrl.Database, dispatcher),
	}
	api.POST("/claims/:itemId", claim.Submit, authenticated, studentOnly)
	api.GET("/claims/pending", claim.Pending, authenticated, adminOnly)
	api.PUT("/claims/:claimId", claim.Decide, authenticated, adminOnly)

	//
	// claim detail handlers
	//
	claimdetail := &claimdetail{
		db:         ctrl.Database,
		uploads:    ctrl.Uploads,
		dispatcher: dispatcher,
	}
	api.POST("/claimDetails/reply", claimdetail.Reply, authenticated, studentOnly)
	api.GET("/claimDetails/claim/:claimId/details", claimdetail.ListByClaim, authenticated, adminOnly)

	//
	// notification handlers
	//
	notification := &notification{
		db: ctrl.Database,
	}
	api.POST("/notifications/create", notification.Create, authenticated, adminOnly)
	api.GET("/notifications", notification.List, authenticated)
	api.GET("/notifications/unread-count", notification.UnreadCount, authenticated)
	api.PUT("/notifications/:id/read", notification.MarkRead, authenticated)

	//
	// user handlers
	//
	user := &user{
		db:      ctrl.Database,
		uploads: ctrl.Uploads,
	}
	api.PATCH("/users/profile-picture", user.ProfilePicture, authenticated)
	api.GET("/users/me", user.Me, authenticated)

	//
	// admin handlers
	//
	admin := &admin{
		db: ctrl.Database,
	}
	api.GET("/admin/stats", admin.Stats, authenticated, adminOnly)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
