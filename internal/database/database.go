package database

import (
	"github.com/astucampus/lostandfound/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is a unique constraint error.
		IsAlreadyExists(err error) bool
		// Transaction runs fn inside a single read-write transaction.
		// The given client is only valid for the duration of fn.
		// Must not be nested.
		Transaction(fn func(tx Client) error) error

		UserInteraction
		ItemInteraction
		ClaimInteraction
		ClaimDetailInteraction
		NotificationInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
		// FindUserByName returns the user for the given name.
		FindUserByName(name string) (*model.User, error)
		// FindUsersByRole returns all users carrying the given role.
		FindUsersByRole(role string) ([]*model.User, error)
	}

	// An ItemInteraction defines all the methods used to interact with item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItemsByOwner returns all items reported by the given user, newest first.
		FindItemsByOwner(ownerID string) ([]*model.Item, error)
		// FindItems returns all items, newest first.
		FindItems() ([]*model.Item, error)
		// SearchItems returns the items matching any of the given words in their
		// category, location or description, newest first.
		// limit equals to 0 means all items.
		SearchItems(words []string, limit int) ([]*model.Item, error)
		// CountItemsByType returns the number of items of the given kind.
		CountItemsByType(kind string) (int, error)
		// CountItemsByStatus returns the number of items with the given status.
		CountItemsByStatus(status string) (int, error)
	}

	// A ClaimInteraction defines all the methods used to interact with claim record(s).
	ClaimInteraction interface {
		// FindClaim returns the claim for the given id (UUID).
		FindClaim(id string) (*model.Claim, error)
		// FindPendingClaim returns the pending claim for the given item and claimant.
		FindPendingClaim(itemID, claimantID string) (*model.Claim, error)
		// FindClaimsByStatus returns all claims with the given status, newest first.
		FindClaimsByStatus(status string) ([]*model.Claim, error)
		// FindClaimsByItem returns all claims referencing the given item, newest first.
		FindClaimsByItem(itemID string) ([]*model.Claim, error)
		// FindLatestPendingClaimByClaimant returns the most recent pending claim
		// submitted by the given user.
		FindLatestPendingClaimByClaimant(claimantID string) (*model.Claim, error)
	}

	// A ClaimDetailInteraction defines all the methods used to interact with claim details.
	ClaimDetailInteraction interface {
		// FindClaimDetailsByClaim returns all details attached to the given claim, newest first.
		FindClaimDetailsByClaim(claimID string) ([]*model.ClaimDetail, error)
	}

	// A NotificationInteraction defines all the methods used to interact with notification record(s).
	NotificationInteraction interface {
		// FindNotificationsByUser returns all notifications for the given recipient, newest first.
		FindNotificationsByUser(userID string) ([]*model.Notification, error)
		// FindNotificationByUser returns the notification for the given id scoped to the recipient.
		FindNotificationByUser(id, userID string) (*model.Notification, error)
		// CountUnreadNotifications returns the number of unread notifications for the recipient.
		CountUnreadNotifications(userID string) (int, error)
	}
)
