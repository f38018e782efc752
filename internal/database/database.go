package database

import (
	"time"

	"github.com/lostandfound/lostandfound/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is an already exists error.
		IsAlreadyExists(err error) bool

		UserInteraction
		ItemInteraction
		EventInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindTopUsers returns the users with the most points, highest first.
		// limit equals to 0 means all users.
		FindTopUsers(limit int) ([]*model.User, error)
		// AwardPoints atomically adds amount to the user's points and returns the new total.
		AwardPoints(userID string, amount int64) (int64, error)
		// SetNotificationToken updates only the delivery token of the user.
		SetNotificationToken(userID, token string) error
	}

	// An ItemInteraction defines all the methods used to interact with item record(s).
	ItemInteraction interface {
		// CreateItem stores a new item and appends its creation event to the change log
		// in the same transaction.
		CreateItem(item *model.Item) error
		// FindItem returns the item for the given id (UUID).
		FindItem(id string) (*model.Item, error)
		// FindItems returns every item in the store's natural iteration order.
		FindItems() ([]*model.Item, error)
		// FindItemsByParams returns the matching items, newest first.
		// Empty category or status means any. limit equals to 0 means all items.
		FindItemsByParams(category string, status model.Status, limit int) ([]*model.Item, error)
	}

	// An EventInteraction defines all the methods used to consume the item change log.
	EventInteraction interface {
		// FindReadyEvents returns pending events due at the given time, oldest first.
		FindReadyEvents(now time.Time, limit int) ([]*model.Event, error)
		// FindEventsByItemID returns the change log entries of an item.
		FindEventsByItemID(itemID string) ([]*model.Event, error)
		// MarkEventDone flags the event as processed.
		MarkEventDone(event *model.Event) error
		// RescheduleEvent records a failed attempt and postpones the event.
		RescheduleEvent(event *model.Event, at time.Time, cause error) error
	}
)
