package model

// Notification type tags.
const (
	NotificationClaimSubmitted = "claim_submitted"
	NotificationClaimRequest   = "claim_request"
	NotificationClaimApproved  = "claim_approved"
	NotificationClaimRejected  = "claim_rejected"
	NotificationClaimUpdate    = "claim_update"
)

// A Notification is an in-app message created as a side effect of lifecycle
// events. Only the Read flag is ever mutated.
type Notification struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID        string `json:"user_id" msgpack:"user_id" storm:"index"`
	Title         string `json:"title"   msgpack:"title"`
	Body          string `json:"body"    msgpack:"body"`
	Type          string `json:"type"    msgpack:"type"`
	RelatedItemID string `json:"related_item_id,omitempty" msgpack:"related_item_id,omitempty"`
	Read          bool   `json:"read"    msgpack:"read" storm:"index"`
}
