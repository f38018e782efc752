package trigger

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lostandfound/lostandfound/internal/metrics"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type (
	// An EventStore is the item change log consumed by the Worker.
	EventStore interface {
		FindItem(id string) (*model.Item, error)
		IsNotFound(err error) bool
		FindReadyEvents(now time.Time, limit int) ([]*model.Event, error)
		MarkEventDone(event *model.Event) error
		RescheduleEvent(event *model.Event, at time.Time, cause error) error
	}

	// A WorkerConfig controls batch size, polling cadence and per-invocation deadline.
	WorkerConfig struct {
		BatchSize   int           // events leased per cycle
		Interval    time.Duration // poll interval
		Concurrency int           // invocations running at the same time
		Deadline    time.Duration // execution deadline of one invocation
		BaseBackoff time.Duration // first redelivery delay
		MaxBackoff  time.Duration // redelivery delay cap
	}

	// A Worker polls the change log and invokes the Handler once per item creation event.
	// Delivery is at-least-once: an event is marked done only after the handler returned.
	Worker struct {
		store   EventStore
		handler Handler
		cfg     WorkerConfig
		now     func() time.Time
	}
)

// NewWorker constructs a Worker from dependencies.
func NewWorker(store EventStore, handler Handler, cfg WorkerConfig) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Deadline <= 0 {
		cfg.Deadline = time.Minute
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Minute
	}
	return &Worker{store: store, handler: handler, cfg: cfg, now: time.Now}
}

// Run starts the polling loop until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	logrus.WithFields(logrus.Fields{
		"batch":       w.cfg.BatchSize,
		"interval":    w.cfg.Interval,
		"concurrency": w.cfg.Concurrency,
	}).Info("trigger worker starting")

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessOnce(ctx); err != nil {
			logrus.WithError(err).Error("trigger worker cycle")
		}

		select {
		case <-ctx.Done():
			logrus.Info("trigger worker stopping")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ProcessOnce handles one batch of ready events and returns how many were leased.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	events, err := w.store.FindReadyEvents(w.now(), w.cfg.BatchSize)
	if err != nil {
		return 0, errors.Wrap(err, "could not lease events")
	}

	sem := make(chan struct{}, w.cfg.Concurrency)
	var wg sync.WaitGroup
	for _, event := range events {
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(event *model.Event) {
			defer func() {
				<-sem
				wg.Done()
			}()
			w.handle(ctx, event)
		}(event)
	}
	wg.Wait()

	return len(events), nil
}

func (w *Worker) handle(ctx context.Context, event *model.Event) {
	log := logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"item_id":  event.ItemID,
		"attempts": event.Attempts,
	})

	if event.Kind != model.EventItemCreated {
		log.WithField("kind", event.Kind).Warn("unknown event kind, ignored")
		w.done(log, event)
		return
	}

	item, err := w.store.FindItem(event.ItemID)
	if err != nil {
		if w.store.IsNotFound(err) {
			log.Warn("event refers to a missing item, ignored")
			w.done(log, event)
			return
		}
		w.reschedule(log, event, err)
		return
	}

	ictx, cancel := context.WithTimeout(ctx, w.cfg.Deadline)
	defer cancel()

	if _, err = w.handler.OnItemCreated(ictx, item); err != nil {
		w.reschedule(log, event, err)
		return
	}
	w.done(log, event)
}

func (w *Worker) done(log logrus.FieldLogger, event *model.Event) {
	if err := w.store.MarkEventDone(event); err != nil {
		// The event stays pending and will be delivered again.
		log.WithError(err).Error("could not mark event done")
	}
}

func (w *Worker) reschedule(log logrus.FieldLogger, event *model.Event, cause error) {
	at := w.now().Add(w.delay(event.Attempts))
	log.WithError(cause).WithField("next_attempt_at", at).Warn("event rescheduled")
	metrics.EventRedeliveries.Inc()

	if err := w.store.RescheduleEvent(event, at, cause); err != nil {
		log.WithError(err).Error("could not reschedule event")
	}
}

// delay returns the redelivery delay after the given number of failed attempts.
func (w *Worker) delay(attempts int) time.Duration {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = w.cfg.BaseBackoff
	exp.MaxInterval = w.cfg.MaxBackoff
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	exp.Reset()

	d := exp.NextBackOff()
	for i := 0; i < attempts; i++ {
		d = exp.NextBackOff()
	}
	return d
}
