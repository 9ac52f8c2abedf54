package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/imaging"
	"github.com/astucampus/lostandfound/internal/lferror"
)

// user contains all user-profile handlers.
type user struct {
	db      database.Client
	uploads *imaging.Store
}

///// Profile picture
////
//

// ProfilePicture replaces the caller's avatar. Multipart field "avatar".
func (h *user) ProfilePicture(c echo.Context) error {
	imagePath, provided, err := storeImage(c, h.uploads, "avatar")
	if err != nil {
		return err
	}
	if !provided {
		return lferror.BadRequest("No image file provided")
	}

	record := currentUser(c)
	if err := h.uploads.Remove(record.ProfilePicture); err != nil {
		logrus.WithError(err).Warn("could not remove old avatar")
	}
	record.ProfilePicture = imagePath

	if err := h.db.Save(record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile picture updated successfully",
		"user":    record,
	})
}

///// Me
////
//

// Me returns the caller's profile.
func (h *user) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}
