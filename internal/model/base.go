// Package model holds the records kept in the storm file: reported items, users and
// the item change log.
package model

import (
	"time"
)

type (
	// A Model is a record of the items, users or events buckets.
	Model interface {
		// GetID returns the record UUID.
		GetID() string
		// SetID assigns the record UUID. It is set once, when the record is first saved.
		SetID(string)
		// GetCreatedAt returns when the record was first saved.
		GetCreatedAt() *time.Time
		// SetCreatedAt stamps the first save.
		SetCreatedAt(time.Time)
		// GetUpdatedAt returns the last save. Items are never saved twice.
		GetUpdatedAt() *time.Time
		// SetUpdatedAt stamps a save.
		SetUpdatedAt(time.Time)
	}

	// A Base holds the identity and save stamps embedded by Item, User and Event.
	Base struct {
		ID        string     `json:"id"         msgpack:"id"         storm:"id"`
		CreatedAt *time.Time `json:"created_at" msgpack:"created_at" storm:"index"`
		UpdatedAt *time.Time `json:"updated_at" msgpack:"updated_at"`
	}
)

// GetID implements Model.
func (m *Base) GetID() string {
	return m.ID
}

// SetID implements Model.
func (m *Base) SetID(id string) {
	m.ID = id
}

// GetCreatedAt implements Model.
func (m *Base) GetCreatedAt() *time.Time {
	return m.CreatedAt
}

// SetCreatedAt implements Model.
func (m *Base) SetCreatedAt(t time.Time) {
	m.CreatedAt = &t
}

// GetUpdatedAt implements Model.
func (m *Base) GetUpdatedAt() *time.Time {
	return m.UpdatedAt
}

// SetUpdatedAt implements Model.
func (m *Base) SetUpdatedAt(t time.Time) {
	m.UpdatedAt = &t
}
