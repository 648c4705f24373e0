// Package wtd fetches historical prices and exchange rates from a World Trading Data compatible API.
package wtd

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

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the API root, endpoints are resolved relative to it.
const DefaultBaseURL = "https://api.worldtradingdata.com/api/v1/"

// ErrShape is returned when a response does not have the expected fields.
var ErrShape = errors.New("unexpected response shape")

// APIError is returned when the API answers with a non 200 status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cannot http GET %s: %s %s", e.Endpoint, e.Status, strings.TrimSpace(e.Message))
}

// Client queries the API over a single reusable http session.
//
// Requests are neither retried nor time limited, the first failure is returned as is.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets the API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the http session.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a new client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: &logTransport{base: http.DefaultTransport, logger: c.logger}}
	}
	return c
}

// logTransport logs every round trip, without the query string that carries the api token.
type logTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.logger.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Str("status", resp.Status).
		Msg("http request")
	return resp, nil
}

// jwget performs an HTTP GET request on endpoint and unmarshals the JSON
// response body into data. Numbers are decoded as json.Number to keep their exact value.
func (c *Client) jwget(ctx context.Context, endpoint string, params url.Values, data any) error {
	params.Set("api_token", c.apiKey)
	addr := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("cannot create request for %s: %w", endpoint, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the url error would leak the api token.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("cannot http GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("cannot read %s response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Endpoint:   endpoint,
			Message:    buf.String(),
		}
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("cannot decode %s response: %w", endpoint, err)
	}
	return nil
}
