package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promptcast/internal/api"
	"promptcast/internal/apiclient"
)

func TestClientRoundTrips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/status" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(api.DaemonStatus{Running: true, Connections: 2})
		case r.URL.Path == "/api/match" && r.Method == http.MethodPost:
			var req struct {
				Title string `json:"title"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode match request: %v", err)
			}
			if req.Title != "hermes birkin" {
				t.Fatalf("unexpected title: %q", req.Title)
			}
			_ = json.NewEncoder(w).Encode(api.MatchResponse{Title: req.Title, Matched: true, Score: 100})
		case r.URL.Path == "/api/match/similar" && r.Method == http.MethodGet:
			if r.URL.Query().Get("limit") != "3" {
				t.Fatalf("expected limit 3, got %q", r.URL.Query().Get("limit"))
			}
			_ = json.NewEncoder(w).Encode(api.SimilarResponse{Title: r.URL.Query().Get("title")})
		case r.URL.Path == "/api/missing" && r.Method == http.MethodGet:
			if r.URL.Query().Get("all") != "1" {
				t.Fatalf("expected all=1, got %q", r.URL.RawQuery)
			}
			_ = json.NewEncoder(w).Encode(api.MissingListResponse{Items: []api.MissingItem{{ID: 4, Title: "Loewe Puzzle"}}})
		case strings.HasSuffix(r.URL.Path, "/resolve") && r.Method == http.MethodPost:
			if r.URL.Path != "/api/missing/4/resolve" {
				t.Fatalf("unexpected resolve path: %q", r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(api.ResolveResponse{Resolved: true})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL)
		}
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	ctx := context.Background()

	status, err := client.Status(ctx)
	if err != nil || !status.Running || status.Connections != 2 {
		t.Fatalf("Status: %#v err=%v", status, err)
	}
	matched, err := client.Match(ctx, "hermes birkin")
	if err != nil || !matched.Matched || matched.Score != 100 {
		t.Fatalf("Match: %#v err=%v", matched, err)
	}
	similar, err := client.Similar(ctx, "kelly", 3)
	if err != nil || similar.Title != "kelly" {
		t.Fatalf("Similar: %#v err=%v", similar, err)
	}
	missing, err := client.Missing(ctx, true)
	if err != nil || len(missing.Items) != 1 {
		t.Fatalf("Missing: %#v err=%v", missing, err)
	}
	resolved, err := client.ResolveMissing(ctx, missing.Items[0].ID)
	if err != nil || !resolved.Resolved {
		t.Fatalf("ResolveMissing: %#v err=%v", resolved, err)
	}
}

func TestClientSurfacesErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "title is required"})
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	if _, err := client.Match(context.Background(), ""); err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected surfaced error message, got %v", err)
	}
}

func TestIsUnavailable(t *testing.T) {
	client, err := apiclient.New("127.0.0.1:1")
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	_, err = client.Status(context.Background())
	if err == nil {
		t.Skip("port 1 unexpectedly open")
	}
	if !apiclient.IsUnavailable(err) {
		t.Fatalf("expected IsUnavailable for %v", err)
	}
}
