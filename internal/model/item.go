package model

import "time"

// Item kinds.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// Item statuses. Transitions are performed by the lifecycle service only:
// pending -> claimed -> resolved (claim approved) or back to pending (claim rejected).
const (
	ItemStatusPending  = "pending"
	ItemStatusClaimed  = "claimed"
	ItemStatusResolved = "resolved"
)

// An Item represents a reported lost or found physical item.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	Type        string    `json:"type"        msgpack:"type"        storm:"index"`
	Description string    `json:"description" msgpack:"description"`
	Category    string    `json:"category"    msgpack:"category"`
	Location    string    `json:"location"    msgpack:"location"`
	ReportedAt  time.Time `json:"reported_at" msgpack:"reported_at" storm:"index"`
	ImagePath   string    `json:"image_path,omitempty" msgpack:"image_path,omitempty"`
	Status      string    `json:"status"      msgpack:"status"      storm:"index"`
	OwnerID     string    `json:"owner_id"    msgpack:"owner_id"    storm:"index"`
	FinderID    string    `json:"finder_id,omitempty" msgpack:"finder_id,omitempty"`
}

// ValidItemType returns true for a recognized item kind.
func ValidItemType(t string) bool {
	return t == ItemTypeLost || t == ItemTypeFound
}
