// Package apiclient is the CLI's HTTP client for the daemon API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"promptcast/internal/api"
)

// ErrDaemonUnavailable reports that the daemon API could not be reached.
var ErrDaemonUnavailable = errors.New("daemon API unavailable")

// Client talks to a running promptcast daemon.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the given bind address ("host:port" or a full URL).
func New(bind string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, errors.New("api address is required")
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, err
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (api.DaemonStatus, error) {
	var payload api.DaemonStatus
	err := c.get(ctx, "/api/status", nil, &payload)
	return payload, err
}

// Match submits an observed title; the daemon resolves it and drives the
// connected displays.
func (c *Client) Match(ctx context.Context, title string) (api.MatchResponse, error) {
	var payload api.MatchResponse
	err := c.post(ctx, "/api/match", map[string]string{"title": title}, &payload)
	return payload, err
}

// Similar fetches the ranked candidate list for a title.
func (c *Client) Similar(ctx context.Context, title string, limit int) (api.SimilarResponse, error) {
	values := url.Values{}
	values.Set("title", title)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var payload api.SimilarResponse
	err := c.get(ctx, "/api/match/similar", values, &payload)
	return payload, err
}

// Missing lists missing-product reports.
func (c *Client) Missing(ctx context.Context, includeResolved bool) (api.MissingListResponse, error) {
	var values url.Values
	if includeResolved {
		values = url.Values{"all": []string{"1"}}
	}
	var payload api.MissingListResponse
	err := c.get(ctx, "/api/missing", values, &payload)
	return payload, err
}

// ResolveMissing marks one report handled.
func (c *Client) ResolveMissing(ctx context.Context, id int64) (api.ResolveResponse, error) {
	var payload api.ResolveResponse
	err := c.post(ctx, fmt.Sprintf("/api/missing/%d/resolve", id), nil, &payload)
	return payload, err
}

func (c *Client) get(ctx context.Context, path string, values url.Values, out any) error {
	endpoint := c.base.ResolveReference(&url.URL{Path: path, RawQuery: values.Encode()})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	endpoint := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errPayload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errPayload); decodeErr == nil && errPayload.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, errPayload.Error)
		}
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// IsUnavailable reports whether the error means no daemon is listening.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.Is(err, ErrDaemonUnavailable) || errors.As(err, &opErr)
}
