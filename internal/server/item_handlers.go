package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/imaging"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/server/serializer"
)

// SearchLimit caps the number of items returned by a search.
const SearchLimit = 50

// item contains all item handlers.
type item struct {
	db      database.Client
	uploads *imaging.Store
}

///// Report
////
//

// Report registers a lost or found item. Multipart body, optional image.
func (h *item) Report(c echo.Context) error {
	kind := c.FormValue("type")
	description := c.FormValue("description")
	category := c.FormValue("category")
	location := c.FormValue("location")

	if kind == "" || description == "" || category == "" || location == "" {
		return lferror.BadRequest("All fields are required")
	}
	if !model.ValidItemType(kind) {
		return lferror.BadRequest("Type must be 'lost' or 'found'")
	}

	imagePath, _, err := storeImage(c, h.uploads, "image")
	if err != nil {
		return err
	}

	user := currentUser(c)
	record := &model.Item{
		Type:        kind,
		Description: description,
		Category:    category,
		Location:    location,
		ReportedAt:  time.Now().UTC(),
		ImagePath:   imagePath,
		Status:      model.ItemStatusPending,
		OwnerID:     user.ID,
	}
	if kind == model.ItemTypeFound {
		record.FinderID = user.ID
	}

	if err := h.db.Save(record); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Item reported successfully",
		"item":    record,
	})
}

///// Search
////
//

// Search returns items matching any word of the query in their category,
// location or description. Public endpoint.
func (h *item) Search(c echo.Context) error {
	words := strings.Fields(strings.TrimSpace(c.QueryParam("q")))

	items, err := h.db.SearchItems(words, SearchLimit)
	if err != nil {
		return err
	}

	render := make([]map[string]any, 0, len(items))
	for _, it := range items {
		owner, err := h.db.FindUser(it.OwnerID)
		if err != nil && !h.db.IsNotFound(err) {
			return err
		}
		render = append(render, serializer.SearchItem(it, owner))
	}

	return c.JSON(http.StatusOK, render)
}

///// My items
////
//

// MyItems returns the items reported by the caller, newest first.
func (h *item) MyItems(c echo.Context) error {
	items, err := h.db.FindItemsByOwner(currentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

///// List
////
//

// List returns all items, newest first. Admin only.
func (h *item) List(c echo.Context) error {
	items, err := h.db.FindItems()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

///// Update
////
//

// Update edits an item's fields and optionally replaces its image. Owner only.
func (h *item) Update(c echo.Context) error {
	record, err := h.db.FindItem(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return lferror.NotFound("Item not found")
		}
		return err
	}

	if record.OwnerID != currentUser(c).ID {
		return lferror.Forbidden("You can only edit your own items")
	}

	if v := c.FormValue("description"); v != "" {
		record.Description = v
	}
	if v := c.FormValue("category"); v != "" {
		record.Category = v
	}
	if v := c.FormValue("location"); v != "" {
		record.Location = v
	}

	imagePath, provided, err := storeImage(c, h.uploads, "image")
	if err != nil {
		return err
	}
	if provided {
		if err := h.uploads.Remove(record.ImagePath); err != nil {
			logrus.WithError(err).Warn("could not remove replaced image")
		}
		record.ImagePath = imagePath
	}

	if err := h.db.Save(record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item updated successfully",
		"item":    record,
	})
}

///// Delete
////
//

// Delete removes an item and its stored image. Owner only, independent of
// claim state; claims referencing the item keep their status.
func (h *item) Delete(c echo.Context) error {
	record, err := h.db.FindItem(c.Param("id"))
	if err != nil {
		if h.db.IsNotFound(err) {
			return lferror.NotFound("Item not found")
		}
		return err
	}

	if record.OwnerID != currentUser(c).ID {
		return lferror.Forbidden("You can only delete your own items")
	}

	if err := h.uploads.Remove(record.ImagePath); err != nil {
		logrus.WithError(err).Warn("could not remove image")
	}

	if err := h.db.Delete(record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item deleted successfully"})
}
