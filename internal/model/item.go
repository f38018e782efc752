package model

import "time"

// A Status tells whether an item was reported lost or found.
type Status string

const (
	// StatusLost is set on items reported by their owner.
	StatusLost Status = "LOST"
	// StatusFound is set on items reported by the person who picked them up.
	StatusFound Status = "FOUND"
)

// Valid returns true for a known status.
func (s Status) Valid() bool {
	return s == StatusLost || s == StatusFound
}

// A Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"  msgpack:"latitude"`
	Longitude float64 `json:"longitude" msgpack:"longitude"`
}

// An Item represents a lost or found report.
// It is never updated once created.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID        string    `json:"user_id"        msgpack:"user_id"        storm:"index"`
	Status        Status    `json:"status"         msgpack:"status"         storm:"index"`
	Category      string    `json:"category"       msgpack:"category"       storm:"index"`
	Description   string    `json:"description"    msgpack:"description"`
	SecretDetails string    `json:"secret_details" msgpack:"secret_details"`
	ImageURL      string    `json:"image_url"      msgpack:"image_url,omitempty"`
	Location      Location  `json:"location"       msgpack:"location"`
	Timestamp     time.Time `json:"timestamp"      msgpack:"timestamp"      storm:"index"`
}

// IsLost returns true if the item was reported by its owner.
func (i *Item) IsLost() bool {
	return i.Status == StatusLost
}

// IsFound returns true if the item was reported by a finder.
func (i *Item) IsFound() bool {
	return i.Status == StatusFound
}
