// Package ledger credits points to users reporting found items.
package ledger

import (
	"github.com/lostandfound/lostandfound/internal/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FoundItemAward is the number of points credited for a found item report.
const FoundItemAward int64 = 5

// A Store performs the atomic read-modify-write of a user's points.
type Store interface {
	AwardPoints(userID string, amount int64) (int64, error)
}

// A Ledger awards points.
// Awards are not idempotent: retrying a successful call credits the user twice.
type Ledger struct {
	store Store
	award int64
}

// New returns a new Ledger crediting award points per found item.
// A non-positive award falls back to FoundItemAward.
func New(store Store, award int64) *Ledger {
	if award <= 0 {
		award = FoundItemAward
	}
	return &Ledger{store: store, award: award}
}

// Award credits amount points to the user and returns the new total.
func (l *Ledger) Award(userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, errors.Errorf("negative award: %d", amount)
	}

	total, err := l.store.AwardPoints(userID, amount)
	if err != nil {
		return 0, errors.Wrap(err, "could not award points")
	}

	metrics.PointsAwarded.Add(float64(amount))
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"points":  total,
	}).Info("points awarded")
	return total, nil
}

// AwardFoundItem credits the configured found item award.
func (l *Ledger) AwardFoundItem(userID string) (int64, error) {
	return l.Award(userID, l.award)
}
