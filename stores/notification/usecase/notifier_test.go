package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/notification/mocks"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/watcher"
)

type fakeSub struct {
	id   string
	uid  user.UserID
	mu   sync.Mutex
	recv []*notification.Event
}

func (f *fakeSub) Id() string          { return f.id }
func (f *fakeSub) UserId() user.UserID { return f.uid }
func (f *fakeSub) Send(evt *notification.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recv = append(f.recv, evt)
	return true
}

func (f *fakeSub) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recv)
}

type notifierSuite struct {
	suite.Suite

	ctx      ctx.Ctx
	registry notification.Registry
	inbox    *mocks.InboxRepo
	archive  *mocks.Archive
}

func (ts *notifierSuite) SetupTest() {
	ts.ctx = ctx.Background()
	ts.registry = watcher.New(metrics.New("watcher"))
	ts.inbox = &mocks.InboxRepo{}
	ts.archive = &mocks.Archive{}
}

func TestNotifier(t *testing.T) {
	suite.Run(t, new(notifierSuite))
}

func (ts *notifierSuite) newEvent(kind notification.Kind) *notification.Event {
	return notification.NewEvent(kind, "a1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
}

func (ts *notifierSuite) TestBroadcastLocal() {
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Archive: ts.archive, Workers: 2})
	watcherA := &fakeSub{id: "s1", uid: "u1"}
	other := &fakeSub{id: "s2", uid: "u2"}
	ts.registry.Add("a1", watcherA)
	ts.registry.Add("a2", other)

	evt := ts.newEvent(notification.KindNewBid)
	archived := make(chan struct{}, 1)
	ts.archive.On("Append", mock.Anything, evt).Return(nil).Run(func(mock.Arguments) {
		archived <- struct{}{}
	}).Once()

	im.Broadcast(ts.ctx, "a1", evt)

	<-archived
	ts.Equal(1, watcherA.received())
	ts.Equal(0, other.received())
	ts.archive.AssertExpectations(ts.T())
}

func (ts *notifierSuite) TestArchiveFailureDoesNotBlockDelivery() {
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Archive: ts.archive, Workers: 2})
	s := &fakeSub{id: "s1", uid: "u1"}
	ts.registry.Add("a1", s)
	ts.archive.On("Append", mock.Anything, mock.Anything).Return(errors.New("nats down"))

	im.Broadcast(ts.ctx, "a1", ts.newEvent(notification.KindAuctionStarted))
	im.Broadcast(ts.ctx, "a1", ts.newEvent(notification.KindAuctionEnded))

	ts.Eventually(func() bool { return s.received() == 2 }, time.Second, 10*time.Millisecond)
}

func (ts *notifierSuite) TestNotifyUserStoresAndPushes() {
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Workers: 2})
	s := &fakeSub{id: "s1", uid: "B1"}
	ts.registry.Connect(s)

	evt := ts.newEvent(notification.KindOutbid)
	evt.Payload.Title = "Lamp"
	ts.inbox.On("Insert", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.RecipientId == "B1" && n.EventId == evt.Id && n.Kind == notification.KindOutbid &&
			n.Message == evt.Message() && !n.Read && n.Id != ""
	})).Return(nil).Once()

	im.NotifyUser(ts.ctx, "B1", evt)

	ts.Eventually(func() bool { return s.received() == 1 }, time.Second, 10*time.Millisecond)
	ts.inbox.AssertExpectations(ts.T())
}

func (ts *notifierSuite) TestSellerWatchingOwnAuctionGetsEndedOnce() {
	// one worker runs the tasks in submission order
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Archive: ts.archive, Workers: 1})
	seller := &fakeSub{id: "s1", uid: "S1"}
	ts.registry.Add("a1", seller)

	ended := ts.newEvent(notification.KindAuctionEnded)
	ts.inbox.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	archived := make(chan struct{}, 1)
	ts.archive.On("Append", mock.Anything, ended).Return(nil).Run(func(mock.Arguments) {
		archived <- struct{}{}
	}).Once()

	im.NotifyUser(ts.ctx, "S1", ended)
	im.Broadcast(ts.ctx, "a1", ended)

	<-archived
	ts.Equal(1, seller.received())
	ts.inbox.AssertExpectations(ts.T())
}

func (ts *notifierSuite) TestNotifyUserPushesWhenInboxFails() {
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Workers: 2})
	s := &fakeSub{id: "s1", uid: "B1"}
	ts.registry.Connect(s)
	ts.inbox.On("Insert", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()

	im.NotifyUser(ts.ctx, "B1", ts.newEvent(notification.KindBidConfirmed))

	ts.Eventually(func() bool { return s.received() == 1 }, time.Second, 10*time.Millisecond)
}

func (ts *notifierSuite) TestRelayPublishesInsteadOfLocal() {
	relay := &mocks.Relay{}
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Relay: relay, Workers: 2})
	s := &fakeSub{id: "s1", uid: "B1"}
	ts.registry.Add("a1", s)

	evt := ts.newEvent(notification.KindNewBid)
	published := make(chan *notification.Envelope, 2)
	relay.On("Publish", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		published <- args.Get(1).(*notification.Envelope)
	})
	ts.inbox.On("Insert", mock.Anything, mock.Anything).Return(nil)

	im.Broadcast(ts.ctx, "a1", evt)
	env := <-published
	ts.Equal("a1", env.AuctionId)
	ts.True(env.UserId.IsZero())

	im.NotifyUser(ts.ctx, "B1", evt)
	env = <-published
	ts.Equal(user.UserID("B1"), env.UserId)

	// delivery happens only when the envelope comes back through Listen
	ts.Equal(0, s.received())
}

func (ts *notifierSuite) TestListenDeliversAndResubscribes() {
	relay := &mocks.Relay{}
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox, Relay: relay, Workers: 2})
	watcherA := &fakeSub{id: "s1", uid: "u1"}
	bidder := &fakeSub{id: "s2", uid: "B1"}
	ts.registry.Add("a1", watcherA)
	ts.registry.Connect(bidder)

	c, cancel := ctx.WithCancel(ts.ctx)
	defer cancel()

	relay.On("Subscribe", mock.Anything, mock.Anything).Return(func(_ ctx.Ctx, handle func(*notification.Envelope)) error {
		handle(&notification.Envelope{AuctionId: "a1", Event: ts.newEvent(notification.KindNewBid)})
		return errors.New("connection reset")
	}).Once()
	relay.On("Subscribe", mock.Anything, mock.Anything).Return(func(c ctx.Ctx, handle func(*notification.Envelope)) error {
		handle(&notification.Envelope{UserId: "B1", Event: ts.newEvent(notification.KindOutbid)})
		<-c.Done()
		return c.Err()
	}).Once()

	done := make(chan struct{})
	go func() {
		im.Listen(c)
		close(done)
	}()

	ts.Eventually(func() bool { return watcherA.received() == 1 && bidder.received() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done
	relay.AssertExpectations(ts.T())
}

func (ts *notifierSuite) TestListenWithoutRelay() {
	im := New(&NotifierCfg{Registry: ts.registry, Inbox: ts.inbox})
	im.Listen(ts.ctx)
}
