package aqara

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Service is the operation surface consumed by the tool and REST layers.
// It allows both to be tested against a stub instead of a live vendor
// endpoint.
type Service interface {
	// ListDevices returns one page of the account's devices
	ListDevices(ctx context.Context, page, size int) (*Page[Device], error)

	// GetDeviceStatus returns the current resource values of a device
	GetDeviceStatus(ctx context.Context, did string) ([]ResourceValue, error)

	// ControlDevice writes one resource value to a device
	ControlDevice(ctx context.Context, did, resourceID string, value any) error

	// ListScenes returns one page of the account's scenes
	ListScenes(ctx context.Context, page, size int) (*Page[Scene], error)

	// ExecuteScene triggers a scene; the vendor runs it asynchronously
	ExecuteScene(ctx context.Context, sceneID string) error

	// DeviceHistory returns recorded samples for a device resource
	DeviceHistory(ctx context.Context, q HistoryQuery) (*Page[HistoryPoint], error)

	// FilterDevices filters a device page client-side by online state
	// and model type
	FilterDevices(ctx context.Context, page, size int, onlineOnly bool, modelType int) ([]Device, error)

	// ClearCache drops every cached response
	ClearCache()

	// CacheLen reports the number of live cached responses
	CacheLen() int
}

// HistoryQuery identifies a slice of a device resource's history.
// StartTime and EndTime must already be RFC 3339 strings; this layer does
// not parse relative or vendor-local time formats.
type HistoryQuery struct {
	DID        string
	ResourceID string
	StartTime  string
	EndTime    string
	Page       int
	PageSize   int
}

// Client executes typed operations against the vendor cloud. It composes
// the signer, rate limiter and response cache; construct it once and share
// it. Client implements Service.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	cache   *Cache
	limiter *Limiter
}

var _ Service = (*Client)(nil)

// ClientOption adjusts Client construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithBaseURL overrides the region-derived endpoint, mainly for tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithCache injects a response cache.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithLimiter injects a rate limiter.
func WithLimiter(l *Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// NewClient validates cfg and builds a client for its regional endpoint.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		baseURL: cfg.BaseURL(),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewCache()
	}
	if c.limiter == nil {
		c.limiter = NewLimiter()
	}
	return c, nil
}

// rpcRequest is the single body shape accepted by the vendor endpoint.
type rpcRequest struct {
	Intent string `json:"intent"`
	Data   any    `json:"data"`
}

// call performs one signed, rate-limited exchange and returns the unwrapped
// payload. A nonzero envelope code becomes an *APIError; anything that
// prevents reading a well-formed envelope becomes a *TransportError.
func (c *Client) call(ctx context.Context, intent string, data any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{Intent: intent, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var raw []byte
	err = c.limiter.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPath, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		signHeaders(c.cfg, req)

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return classifyTransport(err)
		}
		defer func() { _ = resp.Body.Close() }()

		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return &TransportError{Kind: TransportConnection, Detail: "reading response body: " + err.Error(), Err: err}
		}

		log.Debug().
			Str("intent", intent).
			Int("status", resp.StatusCode).
			Dur("latency", time.Since(start)).
			Msg("vendor call")
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, &TransportError{Kind: TransportMalformed, Detail: "empty response body"}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &TransportError{Kind: TransportMalformed, Detail: err.Error(), Err: err}
	}

	if env.Code != 0 {
		return nil, &APIError{
			Code:      env.Code,
			Message:   env.Message,
			Details:   env.MsgDetails,
			RequestID: env.RequestID,
		}
	}

	return env.payload(), nil
}

// classifyTransport distinguishes timeouts from connectivity failures.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Kind: TransportTimeout, Detail: err.Error(), Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Kind: TransportTimeout, Detail: err.Error(), Err: err}
	}
	return &TransportError{Kind: TransportConnection, Detail: err.Error(), Err: err}
}

// ListDevices returns one page of devices, served from cache when a fresh
// copy exists.
func (c *Client) ListDevices(ctx context.Context, page, size int) (*Page[Device], error) {
	page, size = normalizePaging(page, size)
	key := pagedKey(IntentDeviceList, page, size)
	if hit, ok := c.cache.Get(key); ok {
		return hit.(*Page[Device]), nil
	}

	payload, err := c.call(ctx, IntentDeviceList, map[string]any{
		"pageNum":  page,
		"pageSize": size,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodePage[Device](payload)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result, deviceListTTL)
	return result, nil
}

// GetDeviceStatus returns the device's current resource values.
func (c *Client) GetDeviceStatus(ctx context.Context, did string) ([]ResourceValue, error) {
	if did == "" {
		return nil, &ValidationError{Field: "deviceId", Detail: "must not be empty"}
	}
	key := statusKey(did)
	if hit, ok := c.cache.Get(key); ok {
		return hit.([]ResourceValue), nil
	}

	payload, err := c.call(ctx, IntentResourceValue, map[string]any{
		"resources": []map[string]any{{"subjectId": did}},
	})
	if err != nil {
		return nil, err
	}

	var values []ResourceValue
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, &TransportError{Kind: TransportMalformed, Detail: err.Error(), Err: err}
	}
	c.cache.Set(key, values, statusTTL)
	return values, nil
}

// ControlDevice writes value to one resource of a device. The device's
// cached status is invalidated up front so a follow-up read is never
// satisfied from a pre-control entry, regardless of how the call itself
// ends.
func (c *Client) ControlDevice(ctx context.Context, did, resourceID string, value any) error {
	if did == "" {
		return &ValidationError{Field: "deviceId", Detail: "must not be empty"}
	}
	if resourceID == "" {
		return &ValidationError{Field: "resourceId", Detail: "must not be empty"}
	}
	if !isScalar(value) {
		return &ValidationError{Field: "value", Detail: "must be a string, number or boolean"}
	}

	c.cache.Delete(statusKey(did))

	_, err := c.call(ctx, IntentResourceWrite, map[string]any{
		"resources": []map[string]any{{
			"subjectId":  did,
			"resourceId": resourceID,
			"value":      value,
		}},
	})
	return err
}

// ListScenes returns one page of scenes, served from cache when fresh.
func (c *Client) ListScenes(ctx context.Context, page, size int) (*Page[Scene], error) {
	page, size = normalizePaging(page, size)
	key := pagedKey(IntentSceneList, page, size)
	if hit, ok := c.cache.Get(key); ok {
		return hit.(*Page[Scene]), nil
	}

	payload, err := c.call(ctx, IntentSceneList, map[string]any{
		"pageNum":  page,
		"pageSize": size,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodePage[Scene](payload)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result, sceneListTTL)
	return result, nil
}

// ExecuteScene fires a scene. The vendor acknowledges the trigger only;
// there is no completion signal and nothing to cache.
func (c *Client) ExecuteScene(ctx context.Context, sceneID string) error {
	if sceneID == "" {
		return &ValidationError{Field: "sceneId", Detail: "must not be empty"}
	}
	_, err := c.call(ctx, IntentSceneRun, map[string]any{"sceneId": sceneID})
	return err
}

// DeviceHistory returns recorded samples for one device resource. Start
// and end times must be RFC 3339; anything else is rejected before any
// network I/O.
func (c *Client) DeviceHistory(ctx context.Context, q HistoryQuery) (*Page[HistoryPoint], error) {
	if q.DID == "" {
		return nil, &ValidationError{Field: "deviceId", Detail: "must not be empty"}
	}
	if q.ResourceID == "" {
		return nil, &ValidationError{Field: "resourceId", Detail: "must not be empty"}
	}
	if err := validateISOTime("startTime", q.StartTime); err != nil {
		return nil, err
	}
	if err := validateISOTime("endTime", q.EndTime); err != nil {
		return nil, err
	}
	page, size := normalizePaging(q.Page, q.PageSize)

	payload, err := c.call(ctx, IntentHistory, map[string]any{
		"subjectId":   q.DID,
		"resourceIds": []string{q.ResourceID},
		"startTime":   q.StartTime,
		"endTime":     q.EndTime,
		"pageNum":     page,
		"pageSize":    size,
	})
	if err != nil {
		return nil, err
	}

	return decodePage[HistoryPoint](payload)
}

// FilterDevices fetches a device page and filters it client-side. The
// fetch goes through ListDevices and so shares its cache.
func (c *Client) FilterDevices(ctx context.Context, page, size int, onlineOnly bool, modelType int) ([]Device, error) {
	listed, err := c.ListDevices(ctx, page, size)
	if err != nil {
		return nil, err
	}

	filtered := make([]Device, 0, len(listed.Data))
	for _, d := range listed.Data {
		if onlineOnly && !d.Online {
			continue
		}
		if modelType != 0 && d.ModelType != modelType {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// CacheLen reports the number of live cached responses.
func (c *Client) CacheLen() int {
	return c.cache.Len()
}

// validateISOTime rejects anything that is not an RFC 3339 timestamp.
// Already-ISO input is forwarded verbatim; this layer never normalizes.
func validateISOTime(field, value string) error {
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return &ValidationError{
			Field:  field,
			Detail: "must be an ISO-8601 timestamp such as 2024-01-01T00:00:00Z",
		}
	}
	return nil
}

// isScalar reports whether value is one of the control types the vendor
// accepts for a resource write.
func isScalar(value any) bool {
	switch value.(type) {
	case string, bool, float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}

func normalizePaging(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	return page, size
}

// decodePage decodes a paged listing, tolerating both the wrapped
// {data, totalCount} form and a bare array.
func decodePage[T any](payload json.RawMessage) (*Page[T], error) {
	var paged Page[T]
	if err := json.Unmarshal(payload, &paged); err == nil && paged.Data != nil {
		return &paged, nil
	}

	var plain []T
	if err := json.Unmarshal(payload, &plain); err != nil {
		return nil, &TransportError{Kind: TransportMalformed, Detail: err.Error(), Err: err}
	}
	return &Page[T]{Data: plain, TotalCount: len(plain)}, nil
}
