package database

import (
	"regexp"
	"strings"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

type strm struct {
	node storm.Node
	db   *storm.DB // nil within a transaction
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, m := range []model.Model{
		&model.User{},
		&model.Item{},
		&model.Claim{},
		&model.ClaimDetail{},
		&model.Notification{},
	} {
		if err := db.Init(m); err != nil {
			return errors.Wrap(err, "could not init index")
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, m := range []model.Model{
		&model.User{},
		&model.Item{},
		&model.Claim{},
		&model.ClaimDetail{},
		&model.Notification{},
	} {
		if err := db.ReIndex(m); err != nil {
			return errors.Wrap(err, "could not reindex")
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		node: db,
		db:   db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.node.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.node.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is a unique constraint error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// Transaction runs fn inside a single read-write transaction so that
// check-then-act sequences like claim submission commit atomically.
func (c *strm) Transaction(fn func(tx Client) error) error {
	if c.db == nil {
		// Already inside a transaction.
		return fn(c)
	}

	node, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer node.Rollback()

	if err := fn(&strm{node: node}); err != nil {
		return err
	}
	return errors.Wrap(node.Commit(), "could not commit transaction")
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.node.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.node.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindUserByName returns the user for the given name.
func (c *strm) FindUserByName(name string) (*model.User, error) {
	var user model.User
	if err := c.node.One("Name", name, &user); err != nil {
		return nil, errors.Wrap(err, "find user by name")
	}
	return &user, nil
}

// FindUsersByRole returns all users carrying the given role.
func (c *strm) FindUsersByRole(role string) ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := c.node.Select(q.Eq("Role", role)).OrderBy("CreatedAt").Find(&users)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find users by role")
	}
	return users, nil
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.node.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItemsByOwner returns all items reported by the given user, newest first.
func (c *strm) FindItemsByOwner(ownerID string) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.node.Select(q.Eq("OwnerID", ownerID)).OrderBy("ReportedAt").Reverse().Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items by owner")
	}
	return items, nil
}

// FindItems returns all items, newest first.
func (c *strm) FindItems() ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.node.Select().OrderBy("ReportedAt").Reverse().Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// SearchItems returns the items matching any of the given words in their
// category, location or description, newest first.
func (c *strm) SearchItems(words []string, limit int) ([]*model.Item, error) {
	items := make([]*model.Item, 0)

	stmt := c.node.Select(search(words)).OrderBy("ReportedAt").Reverse()
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	err := stmt.Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not search items")
	}
	return items, nil
}

func search(words []string) q.Matcher {
	if len(words) == 0 {
		return q.True()
	}

	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	re := "(?i)" + strings.Join(quoted, "|")

	return q.Or(
		q.Re("Category", re),
		q.Re("Location", re),
		q.Re("Description", re),
	)
}

// CountItemsByType returns the number of items of the given kind.
func (c *strm) CountItemsByType(kind string) (int, error) {
	count, err := c.node.Select(q.Eq("Type", kind)).Count(&model.Item{})
	return count, errors.Wrap(err, "could not count items by type")
}

// CountItemsByStatus returns the number of items with the given status.
func (c *strm) CountItemsByStatus(status string) (int, error) {
	count, err := c.node.Select(q.Eq("Status", status)).Count(&model.Item{})
	return count, errors.Wrap(err, "could not count items by status")
}

// FindClaim returns the claim for the given id (UUID).
func (c *strm) FindClaim(id string) (*model.Claim, error) {
	var claim model.Claim
	if err := c.node.One("ID", id, &claim); err != nil {
		return nil, errors.Wrap(err, "could not find claim")
	}
	return &claim, nil
}

// FindPendingClaim returns the pending claim for the given item and claimant.
func (c *strm) FindPendingClaim(itemID, claimantID string) (*model.Claim, error) {
	var claim model.Claim
	err := c.node.Select(
		q.Eq("ItemID", itemID),
		q.Eq("ClaimantID", claimantID),
		q.Eq("Status", model.ClaimStatusPending),
	).First(&claim)
	if err != nil {
		return nil, errors.Wrap(err, "could not find pending claim")
	}
	return &claim, nil
}

// FindClaimsByStatus returns all claims with the given status, newest first.
func (c *strm) FindClaimsByStatus(status string) ([]*model.Claim, error) {
	claims := make([]*model.Claim, 0)
	err := c.node.Select(q.Eq("Status", status)).OrderBy("SubmittedAt").Reverse().Find(&claims)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find claims by status")
	}
	return claims, nil
}

// FindClaimsByItem returns all claims referencing the given item, newest first.
func (c *strm) FindClaimsByItem(itemID string) ([]*model.Claim, error) {
	claims := make([]*model.Claim, 0)
	err := c.node.Select(q.Eq("ItemID", itemID)).OrderBy("SubmittedAt").Reverse().Find(&claims)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find claims by item")
	}
	return claims, nil
}

// FindLatestPendingClaimByClaimant returns the most recent pending claim
// submitted by the given user.
func (c *strm) FindLatestPendingClaimByClaimant(claimantID string) (*model.Claim, error) {
	var claim model.Claim
	err := c.node.Select(
		q.Eq("ClaimantID", claimantID),
		q.Eq("Status", model.ClaimStatusPending),
	).OrderBy("SubmittedAt").Reverse().First(&claim)
	if err != nil {
		return nil, errors.Wrap(err, "could not find latest pending claim")
	}
	return &claim, nil
}

// FindClaimDetailsByClaim returns all details attached to the given claim, newest first.
func (c *strm) FindClaimDetailsByClaim(claimID string) ([]*model.ClaimDetail, error) {
	details := make([]*model.ClaimDetail, 0)
	err := c.node.Select(q.Eq("ClaimID", claimID)).OrderBy("CreatedAt").Reverse().Find(&details)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find claim details")
	}
	return details, nil
}

// FindNotificationsByUser returns all notifications for the given recipient, newest first.
func (c *strm) FindNotificationsByUser(userID string) ([]*model.Notification, error) {
	notifications := make([]*model.Notification, 0)
	err := c.node.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Reverse().Find(&notifications)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find notifications")
	}
	return notifications, nil
}

// FindNotificationByUser returns the notification for the given id scoped to the recipient.
func (c *strm) FindNotificationByUser(id, userID string) (*model.Notification, error) {
	var notification model.Notification
	err := c.node.Select(q.Eq("ID", id), q.Eq("UserID", userID)).First(&notification)
	if err != nil {
		return nil, errors.Wrap(err, "could not find notification by user")
	}
	return &notification, nil
}

// CountUnreadNotifications returns the number of unread notifications for the recipient.
func (c *strm) CountUnreadNotifications(userID string) (int, error) {
	count, err := c.node.Select(q.Eq("UserID", userID), q.Eq("Read", false)).Count(&model.Notification{})
	return count, errors.Wrap(err, "could not count unread notifications")
}
