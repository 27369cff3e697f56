package hub

import (
	"log/slog"
	"sync"

	"promptcast/internal/logging"
	"promptcast/internal/protocol"
)

// Hub is the connection registry and broadcast fan-out.
type Hub struct {
	logger *slog.Logger

	mu     sync.Mutex
	conns  map[string]*Conn
	topics map[int64]map[string]struct{} // bag id -> subscriber conn ids
	subs   map[string]map[int64]struct{} // conn id -> subscribed bag ids
}

// New constructs an empty hub.
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		logger: logger,
		conns:  make(map[string]*Conn),
		topics: make(map[int64]map[string]struct{}),
		subs:   make(map[string]map[int64]struct{}),
	}
}

// Register accepts a transport and returns the active connection. The hub
// owns the sender from this point on.
func (h *Hub) Register(sender Sender) *Conn {
	conn := newConn(sender)
	conn.state.Store(int32(StateActive))

	h.mu.Lock()
	h.conns[conn.id] = conn
	h.mu.Unlock()

	h.logger.Info("display connected", logging.String(logging.FieldConnID, conn.id))
	return conn
}

// Subscribe adds the connection to a topic, creating the topic on first use.
// Idempotent; reports whether the connection is registered.
func (h *Hub) Subscribe(connID string, bagID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		return false
	}
	subscribers, ok := h.topics[bagID]
	if !ok {
		subscribers = make(map[string]struct{})
		h.topics[bagID] = subscribers
	}
	subscribers[connID] = struct{}{}

	topics, ok := h.subs[connID]
	if !ok {
		topics = make(map[int64]struct{})
		h.subs[connID] = topics
	}
	topics[bagID] = struct{}{}
	return true
}

// Unsubscribe removes the connection from a topic, deleting the topic when
// its subscriber set empties. Idempotent.
func (h *Hub) Unsubscribe(connID string, bagID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(connID, bagID)
}

func (h *Hub) unsubscribeLocked(connID string, bagID int64) {
	if subscribers, ok := h.topics[bagID]; ok {
		delete(subscribers, connID)
		if len(subscribers) == 0 {
			delete(h.topics, bagID)
		}
	}
	if topics, ok := h.subs[connID]; ok {
		delete(topics, bagID)
		if len(topics) == 0 {
			delete(h.subs, connID)
		}
	}
}

// Disconnect removes the connection from the active set and from every topic
// it subscribed to, then closes its transport. Safe to call repeatedly and
// from any goroutine.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	if ok {
		h.removeLocked(connID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	conn.close()
	h.logger.Info("display disconnected", logging.String(logging.FieldConnID, connID))
}

func (h *Hub) removeLocked(connID string) {
	delete(h.conns, connID)
	for bagID := range h.subs[connID] {
		if subscribers, ok := h.topics[bagID]; ok {
			delete(subscribers, connID)
			if len(subscribers) == 0 {
				delete(h.topics, bagID)
			}
		}
	}
	delete(h.subs, connID)
}

// SendTo delivers a message sequence to a single connection (catch-up push).
// A send failure evicts the connection.
func (h *Hub) SendTo(connID string, msgs ...protocol.Message) error {
	h.mu.Lock()
	conn, ok := h.conns[connID]
	h.mu.Unlock()
	if !ok {
		return nil
	}
	for _, msg := range msgs {
		if err := conn.send(msg); err != nil {
			h.evict(conn, err)
			return err
		}
	}
	return nil
}

// Broadcast delivers the message sequence, in order, to every current
// subscriber of the topic. The subscriber set is snapshotted before any send;
// connections subscribed or unsubscribed while delivery is in flight are
// unaffected. Broadcasting to an absent topic is a no-op.
func (h *Hub) Broadcast(bagID int64, msgs ...protocol.Message) {
	h.mu.Lock()
	targets := make([]*Conn, 0, len(h.topics[bagID]))
	for connID := range h.topics[bagID] {
		if conn, ok := h.conns[connID]; ok {
			targets = append(targets, conn)
		}
	}
	h.mu.Unlock()

	h.deliver(targets, msgs)
}

// BroadcastAll delivers the message sequence to every active connection,
// regardless of subscriptions.
func (h *Hub) BroadcastAll(msgs ...protocol.Message) {
	h.mu.Lock()
	targets := make([]*Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		targets = append(targets, conn)
	}
	h.mu.Unlock()

	h.deliver(targets, msgs)
}

func (h *Hub) deliver(targets []*Conn, msgs []protocol.Message) {
	for _, conn := range targets {
		for _, msg := range msgs {
			if err := conn.send(msg); err != nil {
				h.evict(conn, err)
				break
			}
		}
	}
}

// evict removes a connection whose transport failed mid-send.
func (h *Hub) evict(conn *Conn, sendErr error) {
	h.mu.Lock()
	_, present := h.conns[conn.id]
	if present {
		h.removeLocked(conn.id)
	}
	h.mu.Unlock()

	conn.close()
	if present {
		h.logger.Warn("send failed, evicting display",
			logging.String(logging.FieldConnID, conn.id),
			logging.Error(sendErr))
	}
}

// ConnCount returns the number of active connections.
func (h *Hub) ConnCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// TopicCount returns the number of topics with at least one subscriber.
func (h *Hub) TopicCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics)
}

// Subscribed reports whether the connection currently subscribes to the topic.
func (h *Hub) Subscribed(connID string, bagID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.subs[connID][bagID]
	return ok
}

// Close disconnects every connection. Used during daemon shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[string]*Conn)
	h.topics = make(map[int64]map[string]struct{})
	h.subs = make(map[string]map[int64]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		conn.close()
	}
}
