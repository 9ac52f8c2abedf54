package service

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/lferror"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/astucampus/lostandfound/internal/notifier"
)

// Lifecycle enforces the legal status transitions for items and claims.
// It is the only component mutating Item.Status and Claim.Status:
//
//	item:  pending -> claimed -> resolved (claim approved)
//	                          -> pending  (claim rejected)
//	claim: pending -> approved | rejected (terminal)
//
// The governing invariant is that an item has at most one pending claim and
// its status mirrors the most recent claim decision. Each operation runs its
// read-validate-write cycle inside a single database transaction, so two
// concurrent submissions for the same item cannot both pass the checks.
type Lifecycle struct {
	db       database.Client
	notifier *notifier.Notifier
}

// NewLifecycle returns a new Lifecycle service.
func NewLifecycle(db database.Client, n *notifier.Notifier) *Lifecycle {
	return &Lifecycle{
		db:       db,
		notifier: n,
	}
}

// SubmitClaim records a claimant's request against an item and marks the item
// claimed. The item must exist, be in pending status, and carry no other
// pending claim from the same claimant.
func (s *Lifecycle) SubmitClaim(itemID string, claimant *model.User) (*model.Claim, error) {
	var claim *model.Claim
	var item *model.Item

	err := s.db.Transaction(func(tx database.Client) error {
		var err error
		item, err = tx.FindItem(itemID)
		if err != nil {
			if tx.IsNotFound(err) {
				return lferror.NotFound("Item not found")
			}
			return errors.Wrap(err, "could not get item")
		}

		if item.Status != model.ItemStatusPending {
			return lferror.Conflict("This item is no longer available for claiming")
		}

		if _, err = tx.FindPendingClaim(itemID, claimant.ID); err == nil {
			return lferror.Conflict("You already have a pending claim for this item")
		} else if !tx.IsNotFound(err) {
			return errors.Wrap(err, "could not check pending claims")
		}

		claim = &model.Claim{
			ItemID:      itemID,
			ClaimantID:  claimant.ID,
			Status:      model.ClaimStatusPending,
			SubmittedAt: time.Now().UTC(),
		}
		if err = tx.Save(claim); err != nil {
			return errors.Wrap(err, "could not persist claim")
		}

		item.Status = model.ItemStatusClaimed
		return errors.Wrap(tx.Save(item), "could not persist item")
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(claimant,
		"Claim Submitted – Action Required",
		"Your claim has been submitted. Please check notifications to provide your details and ID photo.",
		model.NotificationClaimSubmitted, itemID)

	s.alertAdmins(claimant, item)

	return claim, nil
}

// DecideClaim applies an admin decision to a pending claim and adjusts the
// item accordingly: approved resolves the item, rejected makes it claimable
// again. A decided claim never reverts.
func (s *Lifecycle) DecideClaim(claimID, decision string, decider *model.User) (*model.Claim, error) {
	if !model.ValidClaimDecision(decision) {
		return nil, lferror.BadRequest("Invalid status. Must be 'approved' or 'rejected'")
	}

	var claim *model.Claim
	var item *model.Item

	err := s.db.Transaction(func(tx database.Client) error {
		var err error
		claim, err = tx.FindClaim(claimID)
		if err != nil {
			if tx.IsNotFound(err) {
				return lferror.NotFound("Claim not found")
			}
			return errors.Wrap(err, "could not get claim")
		}

		if claim.Status != model.ClaimStatusPending {
			return lferror.Conflict(fmt.Sprintf("Claim already %s", claim.Status))
		}

		now := time.Now().UTC()
		claim.Status = decision
		claim.ProcessedAt = &now
		claim.ProcessedBy = decider.ID
		if err = tx.Save(claim); err != nil {
			return errors.Wrap(err, "could not persist claim")
		}

		// The item may have been deleted by its owner since the claim was
		// submitted. The decision still stands.
		item, err = tx.FindItem(claim.ItemID)
		if err != nil {
			if tx.IsNotFound(err) {
				item = nil
				return nil
			}
			return errors.Wrap(err, "could not get item")
		}

		if decision == model.ClaimStatusApproved {
			item.Status = model.ItemStatusResolved
		} else {
			item.Status = model.ItemStatusPending
		}
		return errors.Wrap(tx.Save(item), "could not persist item")
	})
	if err != nil {
		return nil, err
	}

	s.notifyDecision(claim, item, decision)

	return claim, nil
}

func (s *Lifecycle) alertAdmins(claimant *model.User, item *model.Item) {
	admins, err := s.db.FindUsersByRole(model.RoleAdmin)
	if err != nil {
		// Best-effort: the claim is already committed.
		return
	}

	description := item.Description
	if runes := []rune(description); len(runes) > 60 {
		description = string(runes[:60]) + "..."
	}

	s.notifier.NotifyAll(admins,
		"New Claim Request",
		fmt.Sprintf("%s has claimed item: %s", claimant.Name, description),
		model.NotificationClaimRequest, item.ID)
}

func (s *Lifecycle) notifyDecision(claim *model.Claim, item *model.Item, decision string) {
	claimant, err := s.db.FindUser(claim.ClaimantID)
	if err != nil {
		return
	}

	description := "the item"
	if item != nil {
		description = item.Description
	}

	title := "Claim Rejected"
	typ := model.NotificationClaimRejected
	if decision == model.ClaimStatusApproved {
		title = "Claim Approved"
		typ = model.NotificationClaimApproved
	}

	s.notifier.Notify(claimant,
		title,
		fmt.Sprintf("Your claim for %q was %s by admin.", description, decision),
		typ, claim.ItemID)
}
