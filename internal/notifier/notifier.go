// Package notifier delivers best-effort push notifications to users.
package notifier

import (
	"context"

	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrInvalidToken is returned by a Pusher when the delivery token is unknown or stale.
var ErrInvalidToken = errors.New("invalid notification token")

type (
	// A Message is what the push service delivers to one device.
	Message struct {
		Token string
		Title string
		Body  string
	}

	// A Pusher submits messages to an external push service.
	Pusher interface {
		Push(ctx context.Context, m Message) error
	}

	// A UserFinder resolves users for the dispatcher.
	UserFinder interface {
		FindUser(id string) (*model.User, error)
		IsNotFound(err error) bool
	}

	// A Dispatcher resolves a user to its delivery token and pushes a message.
	Dispatcher struct {
		users  UserFinder
		pusher Pusher
	}
)

// A Result is the outcome of a dispatch.
type Result int

const (
	// Delivered means the push service accepted the message.
	Delivered Result = iota
	// Skipped means the user cannot be reached (no record, no token or stale token).
	Skipped
	// Failed means the lookup or the push service failed.
	Failed
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// NewDispatcher returns a new Dispatcher.
func NewDispatcher(users UserFinder, pusher Pusher) *Dispatcher {
	return &Dispatcher{
		users:  users,
		pusher: pusher,
	}
}

// Dispatch sends title and body to the given user.
// It never retries and never returns an error: failures are logged and reported as Failed.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, title, body string) Result {
	log := logrus.WithField("user_id", userID)

	user, err := d.users.FindUser(userID)
	if err != nil {
		if d.users.IsNotFound(err) {
			log.Info("no such user, notification skipped")
			return Skipped
		}
		log.WithError(err).Error("could not find notification recipient")
		return Failed
	}

	if !user.CanBeNotified() {
		log.Info("user has no notification token, notification skipped")
		return Skipped
	}

	err = d.pusher.Push(ctx, Message{
		Token: user.NotificationToken,
		Title: title,
		Body:  body,
	})
	switch {
	case err == nil:
		log.Info("notification sent")
		return Delivered
	case errors.Cause(err) == ErrInvalidToken:
		log.Info("stale notification token, notification skipped")
		return Skipped
	default:
		log.WithError(err).Error("could not send notification")
		return Failed
	}
}
