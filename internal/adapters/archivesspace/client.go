package archivesspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"archival-transform-service/internal/platform/obs"
	"archival-transform-service/internal/ports"
)

// Client implements the DescriptionRepository port against an
// ArchivesSpace backend.
//
// Sessions are established lazily on first use and reused across
// requests. Non-2xx responses surface as *ports.RemoteError; failures
// are never retried.
type Client struct {
	session  *http.Client
	baseURL  string
	username string
	password string
	repoID   string

	mu    sync.Mutex
	token string
}

func NewClient(baseURL, username, password, repoID string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("archivesspace base URL is empty")
	}
	if username == "" || password == "" {
		return nil, errors.New("archivesspace credentials are empty")
	}

	return &Client{
		session:  &http.Client{Timeout: 30 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		repoID:   repoID,
	}, nil
}

// endpoint maps a record kind to its repository-scoped collection path.
func (c *Client) endpoint(kind ports.RecordKind) (string, error) {
	switch kind {
	case ports.KindAccession:
		return fmt.Sprintf("/repositories/%s/accessions", c.repoID), nil
	case ports.KindComponent:
		return fmt.Sprintf("/repositories/%s/archival_objects", c.repoID), nil
	case ports.KindDigitalObject:
		return fmt.Sprintf("/repositories/%s/digital_objects", c.repoID), nil
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
}

// Create posts a record of the given kind and returns its URI.
func (c *Client) Create(ctx context.Context, kind ports.RecordKind, record any) (_ string, err error) {
	defer obs.Time(ctx, "archivesspace.Create")(&err)

	path, err := c.endpoint(kind)
	if err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}

	var decoded struct {
		URI string `json:"uri"`
	}
	if err := c.send(ctx, http.MethodPost, path, record, &decoded); err != nil {
		return "", fmt.Errorf("create %s record: %w", kind, err)
	}

	if decoded.URI == "" {
		return "", fmt.Errorf("create %s record: response contained no uri", kind)
	}

	return decoded.URI, nil
}

// Get fetches a record by URI as a raw JSON object.
func (c *Client) Get(ctx context.Context, uri string) (_ map[string]any, err error) {
	defer obs.Time(ctx, "archivesspace.Get")(&err)

	var decoded map[string]any
	if err := c.send(ctx, http.MethodGet, uri, nil, &decoded); err != nil {
		return nil, fmt.Errorf("get record %q: %w", uri, err)
	}

	return decoded, nil
}

// Update replaces the record at the given URI.
func (c *Client) Update(ctx context.Context, uri string, record any) (err error) {
	defer obs.Time(ctx, "archivesspace.Update")(&err)

	if err := c.send(ctx, http.MethodPost, uri, record, nil); err != nil {
		return fmt.Errorf("update record %q: %w", uri, err)
	}

	return nil
}

// NextAccessionNumber finds the next free accession number by searching
// for the highest number filed under the current year. Numbers are
// (year, zero-padded sequence) pairs.
func (c *Client) NextAccessionNumber(ctx context.Context) (_ string, _ string, err error) {
	defer obs.Time(ctx, "archivesspace.NextAccessionNumber")(&err)

	year := strconv.Itoa(time.Now().Year())

	query, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"field":          "four_part_id",
			"value":          year,
			"jsonmodel_type": "field_query",
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("next accession number: marshal query: %w", err)
	}

	params := url.Values{}
	params.Set("page", "1")
	params.Set("type[]", "accession")
	params.Set("sort", "identifier desc")
	params.Set("aq", string(query))

	var decoded struct {
		TotalHits int `json:"total_hits"`
		Results   []struct {
			Identifier string `json:"identifier"`
		} `json:"results"`
	}

	path := fmt.Sprintf("/repositories/%s/search?%s", c.repoID, params.Encode())
	if err := c.send(ctx, http.MethodGet, path, nil, &decoded); err != nil {
		return "", "", fmt.Errorf("next accession number: %w", err)
	}

	next := 1
	if decoded.TotalHits >= 1 && len(decoded.Results) > 0 {
		parts := strings.Split(decoded.Results[0].Identifier, "-")
		if len(parts) >= 2 && parts[0] == year {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				return "", "", fmt.Errorf("next accession number: parse identifier %q: %w", decoded.Results[0].Identifier, err)
			}
			next = n + 1
		}
	}

	return year, fmt.Sprintf("%03d", next), nil
}

// send issues one authenticated request and decodes the JSON response
// into out when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	token, err := c.authorize(ctx)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-ArchivesSpace-Session", token)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// authorize logs in once and caches the session token.
func (c *Client) authorize(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	path := fmt.Sprintf("/users/%s/login?password=%s",
		url.PathEscape(c.username), url.QueryEscape(c.password))

	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return "", fmt.Errorf("authorize: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("authorize user %q: %w", c.username, err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Session string `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("authorize: decode response: %w", err)
	}
	if decoded.Session == "" {
		return "", errors.New("authorize: response contained no session token")
	}

	c.token = decoded.Session
	return c.token, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
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
			System: "archivesspace",
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
