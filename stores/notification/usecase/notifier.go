package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
)

var (
	met     metrics.Service
	metOnce sync.Once
)

const (
	defaultWorkers     = 16
	defaultQueueLength = 1024
	scheduleTimeout    = 100 * time.Millisecond
)

type NotifierCfg struct {
	Registry notification.Registry
	Inbox    notification.InboxRepo
	// Relay, when set, carries every delivery through all replicas instead
	// of the local registry
	Relay notification.Relay
	// Archive, when set, keeps a durable copy of broadcasts
	Archive     notification.Archive
	Workers     int
	QueueLength int
}

// Dispatcher is the notification.Notifier fanning events out on a bounded pool
type Dispatcher struct {
	registry   notification.Registry
	inbox      notification.InboxRepo
	relay      notification.Relay
	archive    notification.Archive
	workerPool *goroutines.Pool
}

func New(cfg *NotifierCfg) *Dispatcher {
	metOnce.Do(func() {
		met = metrics.New("notification")
	})
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueLength := cfg.QueueLength
	if queueLength <= 0 {
		queueLength = defaultQueueLength
	}
	preAlloc := workers / 4
	if preAlloc == 0 {
		preAlloc = 1
	}
	return &Dispatcher{
		registry:   cfg.Registry,
		inbox:      cfg.Inbox,
		relay:      cfg.Relay,
		archive:    cfg.Archive,
		workerPool: goroutines.NewPool(workers, goroutines.WithTaskQueueLength(queueLength), goroutines.WithPreAllocWorkers(preAlloc)),
	}
}

// schedule hands task to the pool, dropping it when the queue stays full
func (im *Dispatcher) schedule(c ctx.Ctx, kind notification.Kind, task func()) {
	if err := im.workerPool.ScheduleWithTimeout(scheduleTimeout, task); err != nil {
		c.WithFields(log.Fields{"err": err, "kind": kind}).Error("workerPool.ScheduleWithTimeout failed, notification dropped")
		met.BumpSum("dropped", 1, "reason", "queue_full")
	}
}

func (im *Dispatcher) Broadcast(c ctx.Ctx, auctionId string, evt *notification.Event) {
	c = ctx.Detach(c)
	im.schedule(c, evt.Kind, func() {
		im.broadcast(c, auctionId, evt)
	})
}

func (im *Dispatcher) broadcast(c ctx.Ctx, auctionId string, evt *notification.Event) {
	if im.relay != nil {
		if err := im.relay.Publish(c, &notification.Envelope{AuctionId: auctionId, Event: evt}); err != nil {
			c.WithFields(log.Fields{"err": err, "kind": evt.Kind}).Error("relay.Publish failed")
			met.BumpSum("dropped", 1, "reason", "relay")
		}
	} else {
		n := im.registry.Broadcast(auctionId, evt)
		met.BumpSum("delivered", float64(n), "kind", string(evt.Kind))
	}

	if im.archive != nil {
		if err := im.archive.Append(c, evt); err != nil {
			c.WithFields(log.Fields{"err": err, "eventId": evt.Id}).Error("archive.Append failed")
			met.BumpSum("archive.failed", 1)
		}
	}
}

func (im *Dispatcher) NotifyUser(c ctx.Ctx, userId user.UserID, evt *notification.Event) {
	c = ctx.Detach(c)
	im.schedule(c, evt.Kind, func() {
		im.notifyUser(c, userId, evt)
	})
}

func (im *Dispatcher) notifyUser(c ctx.Ctx, userId user.UserID, evt *notification.Event) {
	n := &notification.Notification{
		Id:          uuid.NewString(),
		RecipientId: userId,
		AuctionId:   evt.AuctionId,
		EventId:     evt.Id,
		Kind:        evt.Kind,
		Message:     evt.Message(),
		CreatedAt:   evt.CreatedAt,
	}
	// the live push still goes out when the inbox is down
	if err := im.inbox.Insert(c, n); err != nil {
		c.WithFields(log.Fields{"err": err, "userId": userId, "kind": evt.Kind}).Error("inbox.Insert failed")
		met.BumpSum("inbox.failed", 1)
	}

	if im.relay != nil {
		if err := im.relay.Publish(c, &notification.Envelope{UserId: userId, Event: evt}); err != nil {
			c.WithFields(log.Fields{"err": err, "kind": evt.Kind}).Error("relay.Publish failed")
			met.BumpSum("dropped", 1, "reason", "relay")
		}
		return
	}
	sent := im.registry.SendToUser(userId, evt)
	met.BumpSum("delivered", float64(sent), "kind", string(evt.Kind))
}

// deliverLocal hands a relayed envelope to the sessions of this replica
func (im *Dispatcher) deliverLocal(env *notification.Envelope) {
	var n int
	if !env.UserId.IsZero() {
		n = im.registry.SendToUser(env.UserId, env.Event)
	} else {
		n = im.registry.Broadcast(env.AuctionId, env.Event)
	}
	met.BumpSum("delivered", float64(n), "kind", string(env.Event.Kind))
}

// Listen delivers relayed envelopes to local sessions until c is done,
// resubscribing after relay failures. It is a no-op without a relay.
func (im *Dispatcher) Listen(c ctx.Ctx) {
	if im.relay == nil {
		return
	}

	b := backoff.NewExponential(100*time.Millisecond, 10*time.Second)
	for {
		err := im.relay.Subscribe(c, im.deliverLocal)
		if c.Err() != nil {
			return
		}
		c.WithField("err", err).Warn("relay.Subscribe ended, resubscribing")
		met.BumpSum("relay.resubscribe", 1)
		if err := b.Backoff(c); err != nil {
			return
		}
	}
}

// Close stops accepting events, waits for queued ones and closes the registry
func (im *Dispatcher) Close() {
	im.workerPool.Release()
	im.registry.Close()
}
