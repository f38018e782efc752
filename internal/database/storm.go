package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/lostandfound/lostandfound/pkg/stormcodec"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the default format used to store data in the database.
var StormCodec = storm.Codec(stormcodec.MsgPack)

// StormInit initializes Storm database.
func StormInit(database, codec string) error {
	db, err := open(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	if err := db.Init(&model.Item{}); err != nil {
		return errors.Wrap(err, "could not init item index")
	}

	err = db.Init(&model.Event{})
	return errors.Wrap(err, "could not init event index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codec string) error {
	db, err := open(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not ReIndex users")
	}

	if err := db.ReIndex(&model.Item{}); err != nil {
		return errors.Wrap(err, "could not ReIndex items")
	}

	err = db.ReIndex(&model.Event{})
	return errors.Wrap(err, "could not ReIndex events")
}

// StormOpen returns a new Storm database connection.
// An empty codec name selects msgpack.
func StormOpen(database, codec string) (Client, error) {
	db, err := open(database, codec)
	if err != nil {
		return nil, err
	}

	return &strm{
		db: db,
	}, nil
}

func open(database, codec string) (*storm.DB, error) {
	c, err := stormcodec.ByName(codec)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, storm.Codec(c))
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}
	return db, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	stamp(m, time.Now().UTC())
	return errors.Wrap(c.db.Save(m), "could not save the model")
}

func stamp(m model.Model, t time.Time) {
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is an already exists error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindTopUsers returns the users with the most points, highest first.
func (c *strm) FindTopUsers(limit int) ([]*model.User, error) {
	users := make([]*model.User, 0)
	stmt := c.db.Select().OrderBy("Points").Reverse()
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.Find(&users)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find top users")
	}
	return users, nil
}

// AwardPoints atomically adds amount to the user's points.
// Storm write transactions are serialized by bolt so concurrent awards cannot lose updates.
func (c *strm) AwardPoints(userID string, amount int64) (int64, error) {
	tx, err := c.db.Begin(true)
	if err != nil {
		return 0, errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback() // nolint:errcheck

	var user model.User
	if err = tx.One("ID", userID, &user); err != nil {
		return 0, errors.Wrap(err, "find user by id")
	}

	user.Points += amount
	user.SetUpdatedAt(time.Now().UTC())
	if err = tx.Save(&user); err != nil {
		return 0, errors.Wrap(err, "could not save points")
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "could not commit points")
	}
	return user.Points, nil
}

// SetNotificationToken updates only the delivery token of the user.
func (c *strm) SetNotificationToken(userID, token string) error {
	user := &model.User{Base: model.Base{ID: userID}}
	err := c.db.UpdateField(user, "NotificationToken", token)
	return errors.Wrap(err, "could not update notification token")
}

// CreateItem stores a new item and its creation event.
func (c *strm) CreateItem(item *model.Item) error {
	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback() // nolint:errcheck

	t := time.Now().UTC()
	stamp(item, t)
	if item.Timestamp.IsZero() {
		item.Timestamp = t
	}
	if err = tx.Save(item); err != nil {
		return errors.Wrap(err, "could not save the item")
	}

	event := &model.Event{
		Kind:          model.EventItemCreated,
		ItemID:        item.ID,
		Status:        model.EventPending,
		NextAttemptAt: t,
	}
	stamp(event, t)
	if err = tx.Save(event); err != nil {
		return errors.Wrap(err, "could not append item event")
	}

	return errors.Wrap(tx.Commit(), "could not commit item")
}

// FindItem returns the item for the given id (UUID).
func (c *strm) FindItem(id string) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItems returns every item in bucket key order.
func (c *strm) FindItems() ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.db.All(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// FindItemsByParams returns the matching items, newest first.
func (c *strm) FindItemsByParams(category string, status model.Status, limit int) ([]*model.Item, error) {
	var query []q.Matcher

	if category != "" {
		query = append(query, q.Eq("Category", category))
	}

	if status != "" {
		query = append(query, q.Eq("Status", status))
	}

	items := make([]*model.Item, 0)
	stmt := c.db.Select(query...).OrderBy("Timestamp").Reverse()
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// FindReadyEvents returns pending events due at the given time, oldest first.
func (c *strm) FindReadyEvents(now time.Time, limit int) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	stmt := c.db.Select(q.Eq("Status", model.EventPending), q.Lte("NextAttemptAt", now)).OrderBy("CreatedAt")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err := stmt.Find(&events)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find ready events")
	}
	return events, nil
}

// FindEventsByItemID returns the change log entries of an item.
func (c *strm) FindEventsByItemID(itemID string) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	err := c.db.Select(q.Eq("ItemID", itemID)).OrderBy("CreatedAt").Find(&events)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find events by item id")
	}
	return events, nil
}

// MarkEventDone flags the event as processed.
func (c *strm) MarkEventDone(event *model.Event) error {
	event.Status = model.EventDone
	event.LastError = ""
	return c.Save(event)
}

// RescheduleEvent records a failed attempt and postpones the event.
func (c *strm) RescheduleEvent(event *model.Event, at time.Time, cause error) error {
	event.Attempts++
	event.NextAttemptAt = at
	if cause != nil {
		event.LastError = cause.Error()
	}
	return c.Save(event)
}
