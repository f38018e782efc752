package model

import "time"

const (
	// EventItemCreated is appended to the change log when an item is stored.
	EventItemCreated = "item.created"

	// EventPending marks an event not yet processed.
	EventPending = "pending"
	// EventDone marks an event processed by the trigger.
	EventDone = "done"
)

// An Event is an entry of the item change log consumed by the trigger worker.
type Event struct {
	Base `msgpack:",inline" storm:"inline"`

	Kind          string    `json:"kind"            msgpack:"kind"`
	ItemID        string    `json:"item_id"         msgpack:"item_id"         storm:"index"`
	Status        string    `json:"status"          msgpack:"status"          storm:"index"`
	Attempts      int       `json:"attempts"        msgpack:"attempts"`
	NextAttemptAt time.Time `json:"next_attempt_at" msgpack:"next_attempt_at" storm:"index"`
	LastError     string    `json:"last_error"      msgpack:"last_error,omitempty"`
}
