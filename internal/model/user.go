package model

// A User represents a database record.
// Points are only mutated by the ledger; NotificationToken is written by the registration flow.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	FirstName         string `json:"first_name" msgpack:"first_name"`
	LastName          string `json:"last_name"  msgpack:"last_name"`
	Points            int64  `json:"points"     msgpack:"points"     storm:"index"`
	NotificationToken string `json:"-"          msgpack:"notification_token,omitempty"`
}

// NewUser returns a new user with default params.
func NewUser() *User {
	return &User{}
}

// CanBeNotified returns true when a delivery token is registered.
func (u *User) CanBeNotified() bool {
	return u != nil && u.NotificationToken != ""
}
