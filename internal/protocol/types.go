package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promptcast/internal/catalog"
)

// Inbound event types sent by display clients.
const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
	TypeScriptUsed  = "script_used"
)

// Outbound message types pushed to display clients.
const (
	TypeScripts        = "scripts"
	TypeSwitch         = "switch"
	TypeMissingProduct = "missing_product"
	TypePong           = "pong"
)

// ErrMalformed is returned when an inbound payload cannot be decoded or its
// data does not fit the declared type.
var ErrMalformed = errors.New("malformed event")

// Event is a decoded inbound client event.
type Event struct {
	Type     string
	BagID    int64 // subscribe / unsubscribe
	ScriptID int64 // script_used
}

type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type bagData struct {
	BagID int64 `json:"bag_id"`
}

type scriptUsedData struct {
	ScriptID int64 `json:"script_id"`
}

// ParseEvent decodes a raw inbound frame into an Event. Unknown types and
// missing identifiers are reported as ErrMalformed; no partial events are
// returned.
func ParseEvent(raw []byte) (Event, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	evt := Event{Type: env.Type}
	switch env.Type {
	case TypeSubscribe, TypeUnsubscribe:
		var data bagData
		if err := unmarshalData(env.Data, &data); err != nil {
			return Event{}, err
		}
		if data.BagID <= 0 {
			return Event{}, fmt.Errorf("%w: %s requires bag_id", ErrMalformed, env.Type)
		}
		evt.BagID = data.BagID
	case TypePing:
		// No payload.
	case TypeScriptUsed:
		var data scriptUsedData
		if err := unmarshalData(env.Data, &data); err != nil {
			return Event{}, err
		}
		if data.ScriptID <= 0 {
			return Event{}, fmt.Errorf("%w: script_used requires script_id", ErrMalformed)
		}
		evt.ScriptID = data.ScriptID
	default:
		return Event{}, fmt.Errorf("%w: unknown type %q", ErrMalformed, env.Type)
	}
	return evt, nil
}

func unmarshalData(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing data", ErrMalformed)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Message is an outbound envelope. Data is already a concrete payload type;
// the whole message marshals directly to the wire format.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ScriptsData carries the transformed script blocks for one bag.
type ScriptsData struct {
	BagID   int64           `json:"bag_id"`
	Scripts []catalog.Block `json:"scripts"`
}

// SwitchData instructs the display to change to a bag's scripts.
type SwitchData struct {
	BagID   int64  `json:"bag_id"`
	Command string `json:"command"`
}

// MissingData alerts displays that the observed product has no scripts.
type MissingData struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// PongData answers a client ping.
type PongData struct {
	Timestamp string `json:"timestamp"`
}

// Scripts builds a scripts-update message for a bag.
func Scripts(bagID int64, blocks []catalog.Block) Message {
	return Message{Type: TypeScripts, Data: ScriptsData{BagID: bagID, Scripts: blocks}}
}

// Switch builds the switch command preceding a scripts update.
func Switch(bagID int64) Message {
	return Message{Type: TypeSwitch, Data: SwitchData{BagID: bagID, Command: "switch_bag"}}
}

// Missing builds the all-connections alert for an unresolved title.
func Missing(title string, at time.Time) Message {
	return Message{Type: TypeMissingProduct, Data: MissingData{
		Title:     title,
		Message:   "SCRIPT MISSING",
		Timestamp: at.UTC().Format(time.RFC3339),
	}}
}

// Pong builds the heartbeat answer.
func Pong(at time.Time) Message {
	return Message{Type: TypePong, Data: PongData{Timestamp: at.UTC().Format(time.RFC3339)}}
}
