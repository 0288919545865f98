package liststore

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
	"strings"
	"sync"
	"time"
)

// HTTPConfig holds the connection settings for the remote store.
type HTTPConfig struct {
	// BaseURL is the site root, e.g. "https://intranet.example.com/sites/capex".
	BaseURL string
	// AuthToken is sent as a bearer token when non-empty.
	AuthToken string
	// TimeoutMs bounds each individual request.
	TimeoutMs int
}

// httpClient implements Client against the store's REST surface. Mutating
// calls first acquire a request digest from the contextinfo endpoint; the
// digest is cached until shortly before its advertised expiry.
type httpClient struct {
	cfg      HTTPConfig
	http     *http.Client
	observer Observer

	mu           sync.Mutex
	digest       string
	digestExpiry time.Time
}

// NewHTTPClient creates a Client speaking the store's REST protocol.
func NewHTTPClient(cfg HTTPConfig, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 15000
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) itemsURL(collection string) string {
	return fmt.Sprintf("%s/_api/web/lists/getbytitle('%s')/items",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), url.PathEscape(collection))
}

func (c *httpClient) itemURL(collection string, id int) string {
	return fmt.Sprintf("%s(%d)", c.itemsURL(collection), id)
}

// requestDigest returns a valid digest token, acquiring a fresh one from
// POST /_api/contextinfo when the cached token has lapsed.
func (c *httpClient) requestDigest(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.digest != "" && time.Now().Before(c.digestExpiry) {
		return c.digest, nil
	}

	target := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/_api/contextinfo"
	body, err := c.do(ctx, http.MethodPost, target, nil, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		D struct {
			GetContextWebInformation struct {
				FormDigestValue          string `json:"FormDigestValue"`
				FormDigestTimeoutSeconds int    `json:"FormDigestTimeoutSeconds"`
			} `json:"GetContextWebInformation"`
		} `json:"d"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: contextinfo: %v", ErrMalformedResponse, err)
	}

	info := resp.D.GetContextWebInformation
	if info.FormDigestValue == "" {
		return "", fmt.Errorf("%w: contextinfo returned no digest", ErrMalformedResponse)
	}

	c.digest = info.FormDigestValue
	timeout := info.FormDigestTimeoutSeconds
	if timeout <= 0 {
		timeout = 1800
	}
	// Renew one minute early so an in-flight mutation never carries a
	// just-expired token.
	c.digestExpiry = time.Now().Add(time.Duration(timeout-60) * time.Second)

	return c.digest, nil
}

func (c *httpClient) Create(ctx context.Context, collection string, fields Record) (int, error) {
	start := time.Now()
	id, err := c.create(ctx, collection, fields)
	c.observe("create", collection, start, err)
	return id, err
}

func (c *httpClient) create(ctx context.Context, collection string, fields Record) (int, error) {
	digest, err := c.requestDigest(ctx)
	if err != nil {
		return 0, err
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return 0, fmt.Errorf("marshaling %s item: %w", collection, err)
	}

	body, err := c.do(ctx, http.MethodPost, c.itemsURL(collection), payload, map[string]string{
		"X-RequestDigest": digest,
	})
	if err != nil {
		return 0, err
	}

	var resp struct {
		D Record `json:"d"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: create %s: %v", ErrMalformedResponse, collection, err)
	}

	id := resp.D.ID()
	if id <= 0 {
		return 0, fmt.Errorf("%w: create %s", ErrNoIdentity, collection)
	}
	return id, nil
}

func (c *httpClient) Update(ctx context.Context, collection string, id int, fields Record) error {
	start := time.Now()
	err := c.mutateItem(ctx, collection, id, fields, "MERGE")
	c.observe("update", collection, start, err)
	return err
}

func (c *httpClient) Delete(ctx context.Context, collection string, id int) error {
	start := time.Now()
	err := c.mutateItem(ctx, collection, id, nil, "DELETE")
	c.observe("delete", collection, start, err)
	return err
}

func (c *httpClient) mutateItem(ctx context.Context, collection string, id int, fields Record, method string) error {
	digest, err := c.requestDigest(ctx)
	if err != nil {
		return err
	}

	var payload []byte
	if fields != nil {
		payload, err = json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("marshaling %s item: %w", collection, err)
		}
	}

	_, err = c.do(ctx, http.MethodPost, c.itemURL(collection, id), payload, map[string]string{
		"X-RequestDigest": digest,
		"X-HTTP-Method":   method,
		"IF-MATCH":        "*",
	})
	return err
}

func (c *httpClient) Query(ctx context.Context, collection string, q Query) ([]Record, error) {
	start := time.Now()
	records, err := c.query(ctx, collection, q)
	c.observe("query", collection, start, err)
	return records, err
}

func (c *httpClient) query(ctx context.Context, collection string, q Query) ([]Record, error) {
	target := c.itemsURL(collection)
	params := url.Values{}
	if len(q.Select) > 0 {
		params.Set("$select", strings.Join(q.Select, ","))
	}
	if q.Filter != "" {
		params.Set("$filter", q.Filter)
	}
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, target, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		D struct {
			Results []Record `json:"results"`
		} `json:"d"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrMalformedResponse, collection, err)
	}
	return resp.D.Results, nil
}

func (c *httpClient) GetByID(ctx context.Context, collection string, id int) (Record, error) {
	start := time.Now()
	record, err := c.getByID(ctx, collection, id)
	c.observe("get", collection, start, err)
	return record, err
}

func (c *httpClient) getByID(ctx context.Context, collection string, id int) (Record, error) {
	body, err := c.do(ctx, http.MethodGet, c.itemURL(collection, id), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		D Record `json:"d"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: get %s(%d): %v", ErrMalformedResponse, collection, id, err)
	}
	if resp.D == nil {
		return nil, fmt.Errorf("%w: %s(%d)", ErrNotFound, collection, id)
	}
	return resp.D, nil
}

// do issues one request and maps transport and status failures to the
// package error taxonomy. There is deliberately no retry loop.
func (c *httpClient) do(ctx context.Context, method, target string, payload []byte, headers map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json;odata=verbose")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;odata=verbose")
	}
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRemoteUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func (c *httpClient) observe(op, collection string, start time.Time, err error) {
	c.observer.OnCallComplete(CallEvent{
		Operation:  op,
		Collection: collection,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
		ErrorCode:  errorCode(err),
	})
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoIdentity):
		return "NO_IDENTITY"
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRemoteUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
