// Package trigger reacts to item creation events: it looks for the lost report
// matching a new found item and notifies both parties.
package trigger

import (
	"context"
	"sync"

	"github.com/lostandfound/lostandfound/internal/matcher"
	"github.com/lostandfound/lostandfound/internal/metrics"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/lostandfound/lostandfound/internal/notifier"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// RoleOwner is the recipient who reported the lost item.
	RoleOwner = "owner"
	// RoleFinder is the recipient who reported the found item.
	RoleFinder = "finder"
)

type (
	// An ItemLister loads the candidate pool.
	ItemLister interface {
		FindItems() ([]*model.Item, error)
	}

	// A Dispatcher sends one notification to one user.
	Dispatcher interface {
		Dispatch(ctx context.Context, userID, title, body string) notifier.Result
	}

	// A Handler handles item creation events.
	Handler interface {
		OnItemCreated(ctx context.Context, item *model.Item) (Outcome, error)
	}

	// A Controller orchestrates matching and notifications for one item creation event.
	// It only reads the store; invoking it twice for the same item sends the notifications twice.
	Controller struct {
		items      ItemLister
		finder     matcher.Finder
		dispatcher Dispatcher
	}

	// An Outcome describes what an invocation did.
	Outcome struct {
		Match  *model.Item
		Owner  notifier.Result
		Finder notifier.Result
	}
)

// NewController returns a new Controller. A nil finder selects matcher.Find.
func NewController(items ItemLister, finder matcher.Finder, dispatcher Dispatcher) *Controller {
	if finder == nil {
		finder = matcher.FinderFunc(matcher.Find)
	}

	return &Controller{
		items:      items,
		finder:     finder,
		dispatcher: dispatcher,
	}
}

// Matched returns true when a lost item was found.
func (o Outcome) Matched() bool {
	return o.Match != nil
}

// OnItemCreated handles the creation of item.
// Store and notification failures are logged and swallowed. The only returned error is the
// cancellation of ctx, meaning the invocation was abandoned and should be delivered again.
// This includes a failed send once ctx is done: both notifications are then sent again.
func (c *Controller) OnItemCreated(ctx context.Context, item *model.Item) (Outcome, error) {
	var outcome Outcome

	if item == nil {
		logrus.Warn("item creation event without item")
		return outcome, nil
	}

	log := logrus.WithField("item_id", item.ID)

	if item.IsLost() {
		log.Debug("lost item reported, no match lookup")
		metrics.TriggerInvocations.WithLabelValues("skipped_lost").Inc()
		return outcome, nil
	}

	log.Info("found item reported, looking for a match")

	pool, err := c.items.FindItems()
	if aerr := abandoned(ctx); aerr != nil {
		return outcome, aerr
	}
	if err != nil {
		log.WithError(err).Error("could not load candidate items")
		metrics.TriggerInvocations.WithLabelValues("read_failed").Inc()
		return outcome, nil
	}

	match := c.finder.Find(item, without(pool, item.ID))
	if err = abandoned(ctx); err != nil {
		return outcome, err
	}
	if match == nil {
		log.Info("no match")
		metrics.TriggerInvocations.WithLabelValues("unmatched").Inc()
		return outcome, nil
	}

	log.WithField("lost_item_id", match.ID).Info("match found")
	metrics.TriggerInvocations.WithLabelValues("matched").Inc()
	metrics.Matches.Inc()
	outcome.Match = match

	owner := notifier.OwnerNotification(item.Category)
	finder := notifier.FinderNotification(item.Category)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outcome.Owner = c.dispatch(ctx, RoleOwner, match.UserID, owner)
	}()
	go func() {
		defer wg.Done()
		outcome.Finder = c.dispatch(ctx, RoleFinder, item.UserID, finder)
	}()
	wg.Wait()

	// A send cut short by the deadline is delivered again with the whole invocation.
	if outcome.Owner == notifier.Failed || outcome.Finder == notifier.Failed {
		if err = abandoned(ctx); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

func (c *Controller) dispatch(ctx context.Context, role, userID string, n notifier.Notification) notifier.Result {
	result := c.dispatcher.Dispatch(ctx, userID, n.Title, n.Body)
	metrics.Notifications.WithLabelValues(role, result.String()).Inc()
	return result
}

func abandoned(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		metrics.TriggerInvocations.WithLabelValues("abandoned").Inc()
		return errors.Wrap(err, "invocation abandoned")
	}
	return nil
}

// without returns the pool minus the items with the given id, keeping pool order.
func without(pool []*model.Item, id string) []*model.Item {
	candidates := make([]*model.Item, 0, len(pool))
	for _, item := range pool {
		if item != nil && item.ID == id {
			continue
		}
		candidates = append(candidates, item)
	}
	return candidates
}
