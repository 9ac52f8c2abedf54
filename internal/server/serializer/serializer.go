// Package serializer renders composite API responses that join several records.
// Plain records are rendered through their json tags directly.
package serializer

import (
	"github.com/astucampus/lostandfound/internal/model"
)

// UserSummary serializes the public subset of a user.
func UserSummary(u *model.User) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":              u.ID,
		"name":            u.Name,
		"profile_picture": u.ProfilePicture,
	}
}

// UserContact serializes the subset of a user shown to admins.
func UserContact(u *model.User) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"profile_picture": u.ProfilePicture,
	}
}

// ItemSummary serializes the subset of an item attached to a claim render.
func ItemSummary(i *model.Item) map[string]any {
	if i == nil {
		return nil
	}
	return map[string]any{
		"id":          i.ID,
		"type":        i.Type,
		"description": i.Description,
		"category":    i.Category,
		"location":    i.Location,
		"image_path":  i.ImagePath,
	}
}

// SearchItem serializes an item with its reporter's public summary.
func SearchItem(i *model.Item, owner *model.User) map[string]any {
	return map[string]any{
		"id":          i.ID,
		"type":        i.Type,
		"description": i.Description,
		"category":    i.Category,
		"location":    i.Location,
		"reported_at": i.ReportedAt,
		"image_path":  i.ImagePath,
		"status":      i.Status,
		"owner":       UserSummary(owner),
	}
}

// PendingClaim serializes a claim with its item and claimant summaries.
func PendingClaim(c *model.Claim, item *model.Item, claimant *model.User) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"status":       c.Status,
		"submitted_at": c.SubmittedAt,
		"item":         ItemSummary(item),
		"claimant":     UserContact(claimant),
	}
}

// ClaimDetail serializes a claim detail with its submitter's summary.
func ClaimDetail(d *model.ClaimDetail, user *model.User) map[string]any {
	return map[string]any{
		"id":         d.ID,
		"claim_id":   d.ClaimID,
		"content":    d.Content,
		"image_path": d.ImagePath,
		"created_at": d.CreatedAt,
		"user":       UserContact(user),
	}
}
