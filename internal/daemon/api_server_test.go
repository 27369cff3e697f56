package daemon_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"promptcast/internal/api"
)

func readFrame(t *testing.T, socket *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = socket.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := socket.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame.Type, frame.Data
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/api/status", d.APIAddr()))
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	var status api.DaemonStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Running || status.Catalog.Bags != 1 {
		t.Fatalf("unexpected status payload: %#v", status)
	}
}

func TestMatchDrivesSubscribedDisplay(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	socket, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws", d.APIAddr()), nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	defer socket.Close()

	if err := socket.WriteJSON(map[string]any{
		"type": "subscribe",
		"data": map[string]any{"bag_id": 1},
	}); err != nil {
		t.Fatalf("send subscribe: %v", err)
	}

	// Subscribe answers with the bag's current scripts.
	frameType, data := readFrame(t, socket)
	if frameType != "scripts" {
		t.Fatalf("expected catch-up scripts, got %q", frameType)
	}
	var scripts struct {
		BagID   int64 `json:"bag_id"`
		Scripts []struct {
			ID   int    `json:"id"`
			Hook string `json:"hook"`
			CTA  string `json:"cta"`
		} `json:"scripts"`
	}
	if err := json.Unmarshal(data, &scripts); err != nil {
		t.Fatalf("decode scripts: %v", err)
	}
	if scripts.BagID != 1 || len(scripts.Scripts) != 1 || scripts.Scripts[0].ID != 1 {
		t.Fatalf("unexpected catch-up payload: %#v", scripts)
	}

	resp := postJSON(t, fmt.Sprintf("http://%s/api/match", d.APIAddr()), map[string]string{
		"title": "Hermès Birkin 25 in black, excellent condition",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}
	var matchResp api.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResp); err != nil {
		t.Fatalf("decode match response: %v", err)
	}
	if !matchResp.Matched || matchResp.Bag == nil || matchResp.Bag.ID != 1 {
		t.Fatalf("unexpected match response: %#v", matchResp)
	}

	// The subscribed display hears the switch first, then the scripts.
	frameType, data = readFrame(t, socket)
	if frameType != "switch" {
		t.Fatalf("expected switch, got %q", frameType)
	}
	var switchData struct {
		BagID   int64  `json:"bag_id"`
		Command string `json:"command"`
	}
	if err := json.Unmarshal(data, &switchData); err != nil {
		t.Fatalf("decode switch: %v", err)
	}
	if switchData.BagID != 1 || switchData.Command != "switch_bag" {
		t.Fatalf("unexpected switch payload: %#v", switchData)
	}
	frameType, _ = readFrame(t, socket)
	if frameType != "scripts" {
		t.Fatalf("expected scripts after switch, got %q", frameType)
	}
}

func TestMissEndToEnd(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	socket, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/ws", d.APIAddr()), nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	defer socket.Close()

	// A ping round-trip confirms the server registered the connection before
	// the match request broadcasts.
	if err := socket.WriteJSON(map[string]any{"type": "ping"}); err != nil {
		t.Fatalf("send ping: %v", err)
	}
	if frameType, _ := readFrame(t, socket); frameType != "pong" {
		t.Fatalf("expected pong, got %q", frameType)
	}

	// No subscription needed; misses reach every connection.
	resp := postJSON(t, fmt.Sprintf("http://%s/api/match", d.APIAddr()), map[string]string{
		"title": "Bottega Veneta Jodie",
	})
	defer resp.Body.Close()
	var matchResp api.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResp); err != nil {
		t.Fatalf("decode match response: %v", err)
	}
	if matchResp.Matched {
		t.Fatalf("expected a miss, got %#v", matchResp)
	}

	frameType, data := readFrame(t, socket)
	if frameType != "missing_product" {
		t.Fatalf("expected missing_product, got %q", frameType)
	}
	var missing struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &missing); err != nil {
		t.Fatalf("decode missing: %v", err)
	}
	if missing.Title != "Bottega Veneta Jodie" || missing.Message != "SCRIPT MISSING" {
		t.Fatalf("unexpected missing payload: %#v", missing)
	}

	listResp, err := http.Get(fmt.Sprintf("http://%s/api/missing", d.APIAddr()))
	if err != nil {
		t.Fatalf("GET missing: %v", err)
	}
	defer listResp.Body.Close()
	var list api.MissingListResponse
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode missing list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Title != "Bottega Veneta Jodie" {
		t.Fatalf("unexpected missing list: %#v", list)
	}

	resolveResp := postJSON(t, fmt.Sprintf("http://%s/api/missing/%d/resolve", d.APIAddr(), list.Items[0].ID), nil)
	defer resolveResp.Body.Close()
	if resolveResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK resolving, got %d", resolveResp.StatusCode)
	}

	listResp2, err := http.Get(fmt.Sprintf("http://%s/api/missing", d.APIAddr()))
	if err != nil {
		t.Fatalf("GET missing after resolve: %v", err)
	}
	defer listResp2.Body.Close()
	var after api.MissingListResponse
	if err := json.NewDecoder(listResp2.Body).Decode(&after); err != nil {
		t.Fatalf("decode missing list: %v", err)
	}
	if len(after.Items) != 0 {
		t.Fatalf("expected resolved row to disappear, got %#v", after)
	}
}

func TestSimilarEndpoint(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/api/match/similar?title=hermes+birkin", d.APIAddr()))
	if err != nil {
		t.Fatalf("GET similar: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	var similar api.SimilarResponse
	if err := json.NewDecoder(resp.Body).Decode(&similar); err != nil {
		t.Fatalf("decode similar: %v", err)
	}
	if len(similar.Candidates) != 1 || similar.Candidates[0].Bag.ID != 1 {
		t.Fatalf("unexpected candidates: %#v", similar)
	}
	if similar.Candidates[0].Strength != "strong" {
		t.Fatalf("expected a strong candidate, got %#v", similar.Candidates[0])
	}

	missing, err := http.Get(fmt.Sprintf("http://%s/api/match/similar", d.APIAddr()))
	if err != nil {
		t.Fatalf("GET similar without title: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without title, got %d", missing.StatusCode)
	}
}
