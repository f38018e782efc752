package notifier_test

import (
	"context"
	"sync"
	"testing"

	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/lostandfound/lostandfound/internal/notifier"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type users map[string]*model.User

func (u users) FindUser(id string) (*model.User, error) {
	if id == "broken" {
		return nil, errors.New("store unavailable")
	}
	user, ok := u[id]
	if !ok {
		return nil, errors.Wrap(errNotFound, "find user by id")
	}
	return user, nil
}

func (u users) IsNotFound(err error) bool {
	return errors.Cause(err) == errNotFound
}

type pusher struct {
	sync.Mutex
	err      error
	messages []notifier.Message
}

func (p *pusher) Push(_ context.Context, m notifier.Message) error {
	p.Lock()
	defer p.Unlock()

	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, m)
	return nil
}

func TestDispatch(t *testing.T) {
	store := users{
		"alice": {Base: model.Base{ID: "alice"}, NotificationToken: "token-alice"},
		"bob":   {Base: model.Base{ID: "bob"}},
	}

	t.Run("delivered", func(t *testing.T) {
		p := &pusher{}
		d := notifier.NewDispatcher(store, p)

		assert.Equal(t, notifier.Delivered, d.Dispatch(context.Background(), "alice", "title", "body"))
		assert.Equal(t, []notifier.Message{{Token: "token-alice", Title: "title", Body: "body"}}, p.messages)
	})

	t.Run("no token", func(t *testing.T) {
		p := &pusher{}
		d := notifier.NewDispatcher(store, p)

		assert.Equal(t, notifier.Skipped, d.Dispatch(context.Background(), "bob", "title", "body"))
		assert.Empty(t, p.messages)
	})

	t.Run("no user", func(t *testing.T) {
		p := &pusher{}
		d := notifier.NewDispatcher(store, p)

		assert.Equal(t, notifier.Skipped, d.Dispatch(context.Background(), "carol", "title", "body"))
		assert.Empty(t, p.messages)
	})

	t.Run("stale token", func(t *testing.T) {
		p := &pusher{err: errors.Wrap(notifier.ErrInvalidToken, "push")}
		d := notifier.NewDispatcher(store, p)

		assert.Equal(t, notifier.Skipped, d.Dispatch(context.Background(), "alice", "title", "body"))
	})

	t.Run("push failure", func(t *testing.T) {
		p := &pusher{err: errors.New("push service down")}
		d := notifier.NewDispatcher(store, p)

		assert.Equal(t, notifier.Failed, d.Dispatch(context.Background(), "alice", "title", "body"))
	})

	t.Run("lookup failure", func(t *testing.T) {
		p := &pusher{}
		d := notifier.NewDispatcher(store, p)

		assert.Equal(t, notifier.Failed, d.Dispatch(context.Background(), "broken", "title", "body"))
		assert.Empty(t, p.messages)
	})
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "delivered", notifier.Delivered.String())
	assert.Equal(t, "skipped", notifier.Skipped.String())
	assert.Equal(t, "failed", notifier.Failed.String())
	assert.Equal(t, "unknown", notifier.Result(42).String())
}

func TestTemplates(t *testing.T) {
	owner := notifier.OwnerNotification("Phone")
	assert.Equal(t, "Possible match for your item!", owner.Title)
	assert.Equal(t, "A found item in category 'Phone' was reported that may match yours. Check the item list for details.", owner.Body)

	finder := notifier.FinderNotification("Phone")
	assert.Equal(t, "Possible match for the item you found!", finder.Title)
	assert.Equal(t, "You reported finding an item in category 'Phone'. We may have located the owner. Check the item list.", finder.Body)
}
