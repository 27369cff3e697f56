package daemon

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"promptcast/internal/logging"
	"promptcast/internal/protocol"
)

const (
	// Time allowed to write a message to the display.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the display.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size; display events are tiny.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsSender adapts a gorilla connection to the hub's Sender. The mutex
// serializes data writes; control frames go through WriteControl, which
// gorilla allows concurrently.
type wsSender struct {
	mu     sync.Mutex
	socket *websocket.Conn
}

func (c *wsSender) Send(msg protocol.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return c.socket.WriteJSON(msg)
}

func (c *wsSender) Close() error {
	return c.socket.Close()
}

func (s *apiServer) handleWS(w http.ResponseWriter, r *http.Request) {
	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.log().Warn("websocket upgrade failed", logging.Error(err))
		return
	}

	h := s.daemon.hub
	conn := h.Register(&wsSender{socket: socket})
	logger := s.log().With(logging.String(logging.FieldConnID, conn.ID()))

	socket.SetReadLimit(maxMessageSize)
	_ = socket.SetReadDeadline(time.Now().Add(pongWait))
	socket.SetPongHandler(func(string) error {
		return socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := socket.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		h.Disconnect(conn.ID())
	}()

	ctx := logging.ContextWithConnID(r.Context(), conn.ID())
	for {
		_, raw, err := socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("display connection dropped", logging.Error(err))
			}
			return
		}
		if err := s.daemon.router.HandleMessage(ctx, conn.ID(), raw); err != nil {
			if errors.Is(err, protocol.ErrMalformed) {
				// Bad frames are the display's problem; the connection lives on.
				logger.Warn("malformed frame", logging.Error(err))
				continue
			}
			logger.Error("event dispatch failed", logging.Error(err))
		}
	}
}
