package protocol

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"promptcast/internal/catalog"
)

func TestParseEventSubscribe(t *testing.T) {
	evt, err := ParseEvent([]byte(`{"type":"subscribe","data":{"bag_id":42}}`))
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if evt.Type != TypeSubscribe || evt.BagID != 42 {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestParseEventPingWithoutData(t *testing.T) {
	evt, err := ParseEvent([]byte(`{"type":"ping","data":{}}`))
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if evt.Type != TypePing {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestParseEventScriptUsed(t *testing.T) {
	evt, err := ParseEvent([]byte(`{"type":"script_used","data":{"script_id":7}}`))
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if evt.ScriptID != 7 {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestParseEventMalformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"type":"subscribe","data":{}}`,
		`{"type":"subscribe","data":{"bag_id":0}}`,
		`{"type":"script_used","data":{}}`,
		`{"type":"mystery","data":{}}`,
	}
	for _, raw := range cases {
		if _, err := ParseEvent([]byte(raw)); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseEvent(%s) error = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestScriptsMessageWireShape(t *testing.T) {
	msg := Scripts(3, []catalog.Block{{ID: 1, Hook: "hey!", CTA: "dm me"}})
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			BagID   int64 `json:"bag_id"`
			Scripts []map[string]any
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != TypeScripts || decoded.Data.BagID != 3 {
		t.Errorf("unexpected envelope: %s", raw)
	}
	if len(decoded.Data.Scripts) != 1 {
		t.Fatalf("unexpected scripts payload: %s", raw)
	}
	if _, present := decoded.Data.Scripts[0]["look"]; present {
		t.Errorf("empty categories must be omitted: %s", raw)
	}
}

func TestSwitchMessage(t *testing.T) {
	msg := Switch(9)
	data, ok := msg.Data.(SwitchData)
	if !ok || msg.Type != TypeSwitch {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if data.BagID != 9 || data.Command != "switch_bag" {
		t.Errorf("unexpected switch data: %+v", data)
	}
}

func TestMissingMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	msg := Missing("mystery bag", at)
	data := msg.Data.(MissingData)
	if data.Message != "SCRIPT MISSING" || data.Title != "mystery bag" {
		t.Errorf("unexpected missing data: %+v", data)
	}
	if data.Timestamp != "2026-03-01T10:30:00Z" {
		t.Errorf("unexpected timestamp: %q", data.Timestamp)
	}
}
