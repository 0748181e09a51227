package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sagarc03/roster"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// runningBody is what the server answers for paths outside any kind.
	runningBody = "server is running"
)

// Client performs operations against a roster server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	// Apply defaults
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: &Config{
			// Normalize endpoint URL (remove trailing slash)
			Endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the normalized server URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// List returns every record of kind in server order.
func (c *Client) List(ctx context.Context, kind string) ([]roster.Record, error) {
	if err := validateKind(kind); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	body, err := c.do(ctx, http.MethodGet, "/"+kind, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	var records []roster.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("list %s: parse response: %w", kind, err)
	}
	if records == nil {
		records = []roster.Record{}
	}

	for i := range records {
		records[i] = withKindOrder(kind, records[i])
	}
	return records, nil
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, kind string, id int) (roster.Record, error) {
	if err := validateTarget(kind, id); err != nil {
		return roster.Record{}, fmt.Errorf("get: %w", err)
	}

	body, err := c.do(ctx, http.MethodGet, recordPath(kind, id), nil, http.StatusOK)
	if err != nil {
		return roster.Record{}, fmt.Errorf("get %s %d: %w", kind, id, err)
	}

	return decodeRecord(kind, body)
}

// Create stores a new record. The server assigns the id.
func (c *Client) Create(ctx context.Context, kind string, fields roster.Fields) (roster.Record, error) {
	if err := validateKind(kind); err != nil {
		return roster.Record{}, fmt.Errorf("create: %w", err)
	}
	if fields == nil {
		return roster.Record{}, fmt.Errorf("create: %w", ErrNoFields)
	}

	body, err := c.do(ctx, http.MethodPost, "/"+kind, fields, http.StatusCreated)
	if err != nil {
		return roster.Record{}, fmt.Errorf("create %s: %w", kind, err)
	}

	return decodeRecord(kind, body)
}

// Update merges patch into an existing record and returns the result.
func (c *Client) Update(ctx context.Context, kind string, id int, patch roster.Fields) (roster.Record, error) {
	if err := validateTarget(kind, id); err != nil {
		return roster.Record{}, fmt.Errorf("update: %w", err)
	}
	if patch == nil {
		return roster.Record{}, fmt.Errorf("update: %w", ErrNoFields)
	}

	body, err := c.do(ctx, http.MethodPut, recordPath(kind, id), patch, http.StatusOK)
	if err != nil {
		return roster.Record{}, fmt.Errorf("update %s %d: %w", kind, id, err)
	}

	return decodeRecord(kind, body)
}

// Delete deletes one or more records of a kind.
// Continues on error, collecting results for all ids.
func (c *Client) Delete(ctx context.Context, opts DeleteOptions) ([]DeleteResult, error) {
	if err := validateKind(opts.Kind); err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	if len(opts.IDs) == 0 {
		return nil, ErrNoIDs
	}

	results := make([]DeleteResult, 0, len(opts.IDs))

	for _, id := range opts.IDs {
		// Check context cancellation
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, c.deleteSingle(ctx, opts.Kind, id))
	}

	return results, nil
}

func (c *Client) deleteSingle(ctx context.Context, kind string, id int) DeleteResult {
	result := DeleteResult{Kind: kind, ID: id}

	if err := validateTarget(kind, id); err != nil {
		result.Err = err
		return result
	}

	if _, err := c.do(ctx, http.MethodDelete, recordPath(kind, id), nil, http.StatusNoContent); err != nil {
		result.Err = err
		return result
	}

	result.Deleted = true
	return result
}

// HasDeleteErrors returns true if any delete result has an error.
func HasDeleteErrors(results []DeleteResult) bool {
	for i := range results {
		if results[i].Err != nil {
			return true
		}
	}
	return false
}

// Ping checks that the server answers its liveness text on /.
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	start := time.Now()

	body, err := c.do(ctx, http.MethodGet, "/", nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	message := strings.TrimSpace(string(body))
	if message != runningBody {
		return nil, fmt.Errorf("ping: %w: unexpected body %q", ErrUnexpectedResponse, message)
	}

	return &PingResult{
		Endpoint: c.config.Endpoint,
		Message:  message,
		Latency:  time.Since(start),
	}, nil
}

// do sends a request and returns the response body when the status is want.
func (c *Client) do(ctx context.Context, method, path string, payload any, want int) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.Endpoint+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != want {
		return nil, parseServerError(resp.StatusCode, body)
	}

	return body, nil
}

func recordPath(kind string, id int) string {
	return "/" + kind + "/" + strconv.Itoa(id)
}

func validateKind(kind string) error {
	if !roster.IsValidKindName(kind) {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return nil
}

func validateTarget(kind string, id int) error {
	if err := validateKind(kind); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// ParseIDs converts command line arguments into record ids.
func ParseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, ok := roster.ParseID(arg)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func decodeRecord(kind string, body []byte) (roster.Record, error) {
	var rec roster.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return roster.Record{}, fmt.Errorf("parse response: %w", err)
	}
	return withKindOrder(kind, rec), nil
}

// withKindOrder restores the declared field order for built-in kinds, so
// output matches the server's encoding.
func withKindOrder(kind string, rec roster.Record) roster.Record {
	k, ok := roster.DefaultKinds().Lookup(kind)
	if !ok {
		return rec
	}
	return roster.NewRecord(rec.ID, rec.Fields, k.Fields)
}

// parseServerError extracts error message from server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &msg); err == nil {
		apiErr.Message = msg.Message
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	// Message is the server's {"message": ...} text, if any.
	Message string
	Body    string
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = strings.TrimSpace(e.Body)
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + detail
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the record or route does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrBadRequest is returned when the server rejects the body (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrTooLarge is returned when the body exceeds the server limit (413).
	ErrTooLarge = &APIError{StatusCode: http.StatusRequestEntityTooLarge}
)
