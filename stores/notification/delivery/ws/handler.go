package ws

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/notification"
	authMiddleware "github.com/x-xyz/goauction/stores/auth/delivery/http/middleware"
)

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"

	typeSubscribed   = "subscribed"
	typeUnsubscribed = "unsubscribed"
	typeError        = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// watching is public, any origin may connect
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientMessage struct {
	Action    string `json:"action"`
	AuctionId string `json:"auctionId"`
}

type serverMessage struct {
	Type      string `json:"type"`
	AuctionId string `json:"auctionId,omitempty"`
	Message   string `json:"message,omitempty"`
}

type handler struct {
	registry notification.Registry
	auction  auction.UseCase
}

func New(e *echo.Echo, registry notification.Registry, auction auction.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{registry: registry, auction: auction}

	// anonymous sessions may watch auctions, an authenticated one also gets
	// its private notifications
	e.GET("/ws", h.serve, authMiddleware.QueryAuth())
}

func (h *handler) serve(c echo.Context) error {
	rctx := delivery.Ctx(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		rctx.WithField("err", err).Warn("upgrader.Upgrade failed")
		return nil
	}

	s := newSession(uuid.NewString(), authMiddleware.UserId(c), conn)
	// the request context ends with the upgrade handler
	sc := ctx.WithLogFields(ctx.Detach(rctx), log.Fields{"sessionId": s.id, "userId": s.userId})

	h.registry.Connect(s)
	go s.writePump(sc)
	go func() {
		s.readPump(sc, func(msg *clientMessage) {
			h.handleMessage(sc, s, msg)
		})
		h.registry.RemoveAll(s.id)
	}()
	return nil
}

func (h *handler) handleMessage(c ctx.Ctx, s *session, msg *clientMessage) {
	switch msg.Action {
	case actionSubscribe:
		h.subscribe(c, s, msg.AuctionId)
	case actionUnsubscribe:
		h.registry.Remove(msg.AuctionId, s.id)
		s.push(&serverMessage{Type: typeUnsubscribed, AuctionId: msg.AuctionId})
	default:
		s.push(&serverMessage{Type: typeError, Message: "unknown action " + msg.Action})
	}
}

func (h *handler) subscribe(c ctx.Ctx, s *session, auctionId string) {
	a, err := h.auction.Get(c, auctionId)
	if errors.Is(err, domain.ErrNotFound) {
		s.push(&serverMessage{Type: typeError, AuctionId: auctionId, Message: "auction not found"})
		return
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": auctionId}).Error("auction.Get failed")
		s.push(&serverMessage{Type: typeError, AuctionId: auctionId, Message: "internal error"})
		return
	}

	h.registry.Add(auctionId, s)
	s.push(&serverMessage{Type: typeSubscribed, AuctionId: auctionId})
	s.Send(statusOf(a, h.registry.Count(auctionId)))
}

// statusOf is the snapshot a new watcher starts from
func statusOf(a *auction.Auction, watchers int) *notification.Event {
	evt := notification.NewEvent(notification.KindAuctionStatus, a.Id, a.UpdatedAt)
	price := a.CurrentPrice
	evt.Payload = notification.Payload{
		Title:    a.Title,
		Amount:   &price,
		Status:   string(a.Status),
		WinnerId: a.HighestBidderId,
		Watchers: watchers,
	}
	return evt
}
