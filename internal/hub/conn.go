package hub

import (
	"sync/atomic"

	"github.com/google/uuid"

	"promptcast/internal/protocol"
)

// Sender is the transport half of a connection. The hub owns the handle
// exclusively once the connection is registered; implementations must be
// safe for concurrent Send calls.
type Sender interface {
	Send(msg protocol.Message) error
	Close() error
}

// State is a connection's lifecycle phase.
type State int32

const (
	StateConnecting State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Conn is one live display connection. IDs are never reused.
type Conn struct {
	id     string
	sender Sender
	state  atomic.Int32
}

func newConn(sender Sender) *Conn {
	c := &Conn{id: uuid.NewString(), sender: sender}
	c.state.Store(int32(StateConnecting))
	return c
}

// ID returns the connection's opaque identifier.
func (c *Conn) ID() string { return c.id }

// State returns the connection's current lifecycle phase.
func (c *Conn) State() State { return State(c.state.Load()) }

func (c *Conn) send(msg protocol.Message) error {
	return c.sender.Send(msg)
}

// close transitions to StateClosed and releases the transport. Safe to call
// from the connection's own handler and from a broadcast that detected a
// send failure; only the first call closes the transport.
func (c *Conn) close() {
	if c.state.Swap(int32(StateClosed)) == int32(StateClosed) {
		return
	}
	_ = c.sender.Close()
}
