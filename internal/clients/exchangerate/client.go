// Package exchangerate provides a client for the ExchangeRate-API
// (open.er-api.com, or v6.exchangerate-api.com when a key is configured).
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/models"
)

const (
	DefaultBaseURL   = "https://open.er-api.com/v6"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 2 // requests per second
)

// Client fetches latest exchange rates.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIKey switches to the keyed endpoint layout /{key}/latest/{base}.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new exchange-rate client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchange rate API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// latestResponse covers both the open and keyed response shapes.
type latestResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	LastUpdateUnix  int64              `json:"time_last_update_unix"`
	Rates           map[string]float64 `json:"rates"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("path", c.redact(path)).Msg("Exchange rate API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   c.redact(path),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) redact(path string) string {
	if c.apiKey == "" {
		return path
	}
	return strings.Replace(path, url.PathEscape(c.apiKey), "***", 1)
}

// Latest returns the current rates quoted against base (1 base = rate units).
func (c *Client) Latest(ctx context.Context, base string) (*models.ExchangeRates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	path := "/latest/" + url.PathEscape(base)
	if c.apiKey != "" {
		path = "/" + url.PathEscape(c.apiKey) + path
	}

	var resp latestResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Result != "" && resp.Result != "success" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.ErrorType, Endpoint: c.redact(path)}
	}

	rates := resp.Rates
	if len(rates) == 0 {
		rates = resp.ConversionRates
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("exchange rate response for %s has no rates", base)
	}
	if resp.BaseCode != "" {
		base = resp.BaseCode
	}
	rates[base] = 1

	asOf := time.Now().UTC()
	if resp.LastUpdateUnix > 0 {
		asOf = time.Unix(resp.LastUpdateUnix, 0).UTC()
	}

	return &models.ExchangeRates{
		Base:   base,
		Rates:  rates,
		AsOf:   asOf,
		Source: models.RateSourceLive,
	}, nil
}
