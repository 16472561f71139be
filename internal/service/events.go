package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/queue"
)

const publishTimeout = 5 * time.Second

// Notifier publishes activity events in the background once the change
// they describe is committed.  A failed publish is logged and dropped.
type Notifier struct {
	pub queue.Publisher
	log *zap.Logger
	wg  sync.WaitGroup
}

func NewNotifier(pub queue.Publisher, log *zap.Logger) *Notifier {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	return &Notifier{pub: pub, log: log}
}

// Notify sends ev without blocking the caller.  The request context is
// detached so a finished request does not cancel the publish.
func (n *Notifier) Notify(ctx context.Context, ev queue.ActivityEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()
		if err := n.pub.Publish(ctx, ev); err != nil {
			n.log.Warn("activity event dropped", zap.String("event", ev.Type), zap.Error(err))
		}
	}()
}

// Wait blocks until every pending publish has finished.
func (n *Notifier) Wait() { n.wg.Wait() }
