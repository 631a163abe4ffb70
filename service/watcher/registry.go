package watcher

import (
	"sync"

	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
)

// recentEvents bounds how many event ids a session remembers
const recentEvents = 128

type session struct {
	sub      notification.Subscriber
	auctions map[string]struct{}

	// an event reaching a session through both the auction and its user
	// is delivered once
	mu     sync.Mutex
	seen   map[string]struct{}
	recent []string
}

func newSession(s notification.Subscriber) *session {
	return &session{
		sub:      s,
		auctions: make(map[string]struct{}),
		seen:     make(map[string]struct{}, recentEvents),
		recent:   make([]string, 0, recentEvents),
	}
}

// claim reports whether evtId was not delivered yet and marks it delivered
func (ss *session) claim(evtId string) bool {
	if evtId == "" {
		return true
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.seen[evtId]; ok {
		return false
	}
	if len(ss.recent) == recentEvents {
		delete(ss.seen, ss.recent[0])
		ss.recent = append(ss.recent[:0], ss.recent[1:]...)
	}
	ss.seen[evtId] = struct{}{}
	ss.recent = append(ss.recent, evtId)
	return true
}

// release forgets evtId so a later path may still deliver it
func (ss *session) release(evtId string) {
	if evtId == "" {
		return
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.seen[evtId]; !ok {
		return
	}
	delete(ss.seen, evtId)
	for i, id := range ss.recent {
		if id == evtId {
			ss.recent = append(ss.recent[:i], ss.recent[i+1:]...)
			break
		}
	}
}

type impl struct {
	mu       sync.RWMutex
	sessions map[string]*session
	// auctionId -> subscriberId -> session
	watchers map[string]map[string]*session
	// userId -> subscriberId -> session
	users  map[user.UserID]map[string]*session
	closed bool
	met    metrics.Service
}

// New creates an empty registry owned by the caller
func New(met metrics.Service) notification.Registry {
	return &impl{
		sessions: make(map[string]*session),
		watchers: make(map[string]map[string]*session),
		users:    make(map[user.UserID]map[string]*session),
		met:      met,
	}
}

func (im *impl) connectLocked(s notification.Subscriber) *session {
	if ss, ok := im.sessions[s.Id()]; ok {
		return ss
	}
	ss := newSession(s)
	im.sessions[s.Id()] = ss

	if uid := s.UserId(); !uid.IsZero() {
		if im.users[uid] == nil {
			im.users[uid] = make(map[string]*session)
		}
		im.users[uid][s.Id()] = ss
	}
	return ss
}

func (im *impl) Connect(s notification.Subscriber) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed {
		return
	}
	im.connectLocked(s)
}

func (im *impl) Add(auctionId string, s notification.Subscriber) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed {
		return
	}

	ss := im.connectLocked(s)
	ss.auctions[auctionId] = struct{}{}
	if im.watchers[auctionId] == nil {
		im.watchers[auctionId] = make(map[string]*session)
	}
	im.watchers[auctionId][s.Id()] = ss
}

func (im *impl) removeLocked(auctionId, subscriberId string) {
	if subs, ok := im.watchers[auctionId]; ok {
		delete(subs, subscriberId)
		if len(subs) == 0 {
			delete(im.watchers, auctionId)
		}
	}
	if ss, ok := im.sessions[subscriberId]; ok {
		delete(ss.auctions, auctionId)
	}
}

func (im *impl) Remove(auctionId, subscriberId string) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.removeLocked(auctionId, subscriberId)
}

func (im *impl) RemoveAll(subscriberId string) {
	im.mu.Lock()
	defer im.mu.Unlock()

	ss, ok := im.sessions[subscriberId]
	if !ok {
		return
	}
	for auctionId := range ss.auctions {
		im.removeLocked(auctionId, subscriberId)
	}
	if uid := ss.sub.UserId(); !uid.IsZero() {
		delete(im.users[uid], subscriberId)
		if len(im.users[uid]) == 0 {
			delete(im.users, uid)
		}
	}
	delete(im.sessions, subscriberId)
}

// deliver sends outside the lock, Send never blocks
func (im *impl) deliver(sessions []*session, evt *notification.Event) int {
	sent := 0
	for _, ss := range sessions {
		if !ss.claim(evt.Id) {
			im.met.BumpSum("duplicate", 1, "kind", string(evt.Kind))
			continue
		}
		if ss.sub.Send(evt) {
			sent++
			continue
		}
		ss.release(evt.Id)
		im.met.BumpSum("dropped", 1, "kind", string(evt.Kind))
		log.Log().WithFields(log.Fields{
			"subscriberId": ss.sub.Id(),
			"auctionId":    evt.AuctionId,
			"kind":         evt.Kind,
		}).Warn("subscriber buffer full, event dropped")
	}
	im.met.BumpSum("delivered", float64(sent), "kind", string(evt.Kind))
	return sent
}

func (im *impl) Broadcast(auctionId string, evt *notification.Event) int {
	im.mu.RLock()
	subs := make([]*session, 0, len(im.watchers[auctionId]))
	for _, ss := range im.watchers[auctionId] {
		subs = append(subs, ss)
	}
	im.mu.RUnlock()

	return im.deliver(subs, evt)
}

func (im *impl) SendToUser(userId user.UserID, evt *notification.Event) int {
	im.mu.RLock()
	subs := make([]*session, 0, len(im.users[userId]))
	for _, ss := range im.users[userId] {
		subs = append(subs, ss)
	}
	im.mu.RUnlock()

	return im.deliver(subs, evt)
}

func (im *impl) Count(auctionId string) int {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return len(im.watchers[auctionId])
}

// Close forgets every session. Later Connect/Add calls are ignored.
func (im *impl) Close() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.closed = true
	im.sessions = make(map[string]*session)
	im.watchers = make(map[string]map[string]*session)
	im.users = make(map[user.UserID]map[string]*session)
}
