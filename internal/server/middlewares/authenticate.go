package middlewares

import (
	"strings"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/server/token"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// CurrentRoleContextKey is the key to retrieve the role granted by the bearer token.
	// The token's role is authoritative for authorization, not the user record.
	CurrentRoleContextKey = "current_role"
)

// Authenticate returns a bearer-token auth middleware.
// It verifies the JWT and stores current_user and the token's role into echo.Context.
func Authenticate(db database.Client, m token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			authorization := c.Request().Header.Get(echo.HeaderAuthorization)
			raw := bearer(authorization)

			if raw == "" {
				return lferror.Unauthorized("No token provided")
			}

			claims, err := m.Verify(raw)
			if err != nil {
				return lferror.Unauthorized("Invalid token")
			}

			user, err := db.FindUser(claims.Subject)
			if err != nil {
				if db.IsNotFound(err) {
					return lferror.Unauthorized("No such user for given token")
				}
				return errors.Wrap(err, "could not get access to database")
			}

			c.Set(CurrentUserContextKey, user)
			c.Set(CurrentRoleContextKey, claims.Role)

			return next(c)
		}
	}
}

// RequireRole returns a middleware rejecting callers whose token role is not
// one of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CurrentRoleContextKey).(string)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}

			return lferror.Forbidden("Access denied")
		}
	}
}

func bearer(authorization string) string {
	parts := strings.Split(authorization, " ")
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
