package aurora

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"archival-transform-service/internal/platform/obs"
	"archival-transform-service/internal/ports"
)

// Client implements the WorkflowClient port against Aurora, the system
// that originated the packages. Updates are PATCH requests; the
// hostname of any stored record URL is discarded so that the configured
// base URL is always used.
type Client struct {
	session  *http.Client
	baseURL  string
	username string
	password string

	mu    sync.Mutex
	token string
}

func NewClient(baseURL, username, password string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("aurora base URL is empty")
	}
	if username == "" || password == "" {
		return nil, errors.New("aurora credentials are empty")
	}

	return &Client{
		session:  &http.Client{Timeout: 30 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
	}, nil
}

// UpdateRecord patches the record named by rawURL with the given
// fields. Only the record's trailing collection/identifier path is
// kept; everything before it is replaced by the configured base URL.
func (c *Client) UpdateRecord(ctx context.Context, rawURL string, payload map[string]any) (err error) {
	defer obs.Time(ctx, "aurora.UpdateRecord")(&err)

	path, err := recordPath(rawURL)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	token, err := c.authorize(ctx)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("update record: encode payload: %w", err)
	}

	target := c.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, target, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("update record: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("update record %q: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// recordPath reduces a full record URL to its trailing
// "collection/identifier/" path.
func recordPath(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("url %q has no collection/identifier path", rawURL)
	}

	identifier := segments[len(segments)-1]
	collection := segments[len(segments)-2]
	return collection + "/" + identifier + "/", nil
}

// authorize obtains a token once and caches it.
func (c *Client) authorize(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	creds, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return "", fmt.Errorf("authorize: encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/get-token/", bytes.NewReader(creds))
	if err != nil {
		return "", fmt.Errorf("authorize: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("authorize user %q: %w", c.username, err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("authorize: decode response: %w", err)
	}
	if decoded.Token == "" {
		return "", errors.New("authorize: response contained no token")
	}

	c.token = decoded.Token
	return c.token, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &ports.RemoteError{
			System: "aurora",
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
