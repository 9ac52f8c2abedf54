package model

import "time"

// Claim statuses. A claim is monotonic: once approved or rejected it never
// goes back to pending.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// A Claim records a claimant's request against an item.
type Claim struct {
	Base `msgpack:",inline" storm:"inline"`

	ItemID      string     `json:"item_id"     msgpack:"item_id"     storm:"index"`
	ClaimantID  string     `json:"claimant_id" msgpack:"claimant_id" storm:"index"`
	Status      string     `json:"status"      msgpack:"status"      storm:"index"`
	SubmittedAt time.Time  `json:"submitted_at" msgpack:"submitted_at" storm:"index"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" msgpack:"processed_at,omitempty"`
	ProcessedBy string     `json:"processed_by,omitempty" msgpack:"processed_by,omitempty"`
}

// ValidClaimDecision returns true for a recognized admin decision.
func ValidClaimDecision(status string) bool {
	return status == ClaimStatusApproved || status == ClaimStatusRejected
}

// A ClaimDetail is supporting evidence attached to a claim by its claimant.
// Read-only once created.
type ClaimDetail struct {
	Base `msgpack:",inline" storm:"inline"`

	ClaimID   string `json:"claim_id" msgpack:"claim_id" storm:"index"`
	UserID    string `json:"user_id"  msgpack:"user_id"  storm:"index"`
	Content   string `json:"content,omitempty"    msgpack:"content,omitempty"`
	ImagePath string `json:"image_path,omitempty" msgpack:"image_path,omitempty"`
}
