package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain/notification"
	"github.com/x-xyz/goauction/domain/user"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// session is one websocket connection. It implements notification.Subscriber.
type session struct {
	id     string
	userId user.UserID
	conn   *websocket.Conn
	send   chan interface{}
	done   chan struct{}
	once   sync.Once
}

func newSession(id string, userId user.UserID, conn *websocket.Conn) *session {
	return &session{
		id:     id,
		userId: userId,
		conn:   conn,
		send:   make(chan interface{}, sendBufferSize),
		done:   make(chan struct{}),
	}
}

func (s *session) Id() string {
	return s.id
}

func (s *session) UserId() user.UserID {
	return s.userId
}

func (s *session) Send(evt *notification.Event) bool {
	return s.push(evt)
}

// push never blocks. A closed session or a full buffer drops msg.
func (s *session) push(msg interface{}) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *session) writePump(c ctx.Ctx) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				c.WithFields(log.Fields{"err": err, "sessionId": s.id}).Warn("conn.WriteJSON failed")
				s.close()
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		}
	}
}

// readPump hands every client message to handle until the connection drops
func (s *session) readPump(c ctx.Ctx, handle func(*clientMessage)) {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msg := &clientMessage{}
		if err := s.conn.ReadJSON(msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.WithFields(log.Fields{"err": err, "sessionId": s.id}).Warn("conn.ReadJSON failed")
			}
			return
		}
		handle(msg)
	}
}
