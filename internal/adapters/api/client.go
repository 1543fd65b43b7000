package api

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
	"time"

	"github.com/bnema/estate-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxResponseBytes    = 1 << 20
	defaultErrorMessage = "something went wrong"
)

// ErrSessionExpired marks a 401 from any endpoint. By the time a caller
// sees it the credential store has already been cleared.
var ErrSessionExpired = errors.New("session expired")

// Error is the normalized failure value for non-2xx responses.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	return nil
}

// Client is the single outbound chokepoint for the platform API. It
// attaches the stored bearer credential to every request, normalizes
// failures, and tears the session down on any 401 — regardless of which
// endpoint produced it.
type Client struct {
	baseURL          *url.URL
	httpClient       *http.Client
	creds            ports.CredentialStore
	notifier         ports.Notifier
	onSessionExpired func()
	logger           zerolog.Logger
}

type Config struct {
	BaseURL     string
	HTTPClient  *http.Client
	Credentials ports.CredentialStore
	Notifier    ports.Notifier
	// OnSessionExpired runs after the credential store has been cleared
	// in response to a 401. The navigation/redirect decision belongs to
	// the caller, not the gateway.
	OnSessionExpired func()
	Logger           zerolog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Credentials == nil {
		return nil, errors.New("credential store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	return &Client{
		baseURL:          base,
		httpClient:       httpClient,
		creds:            cfg.Credentials,
		notifier:         notifier,
		onSessionExpired: cfg.OnSessionExpired,
		logger:           cfg.Logger,
	}, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint, err := c.endpoint(path, query)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if session, err := c.creds.Load(ctx); err == nil && session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("method", method).Str("path", path).Err(err).Msg("transport failure")
		c.notifier.NotifyError(defaultErrorMessage)
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.notifier.NotifyError(defaultErrorMessage)
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.failedCall(ctx, method, path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// failedCall normalizes a non-2xx response. A 401 is a fatal session
// event: the credential store is cleared unconditionally before the
// error is returned, so every later call from any resource starts
// unauthenticated.
func (c *Client) failedCall(ctx context.Context, method, path string, statusCode int, raw []byte) error {
	message := serverMessage(raw)

	if statusCode == http.StatusUnauthorized {
		if err := c.creds.Clear(ctx); err != nil {
			c.logger.Error().Err(err).Msg("clear credentials after 401")
		}
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		c.logger.Warn().Str("method", method).Str("path", path).Msg("session invalidated by 401")
	} else {
		c.logger.Warn().Str("method", method).Str("path", path).Int("status", statusCode).Str("message", message).Msg("request failed")
	}

	c.notifier.NotifyError(message)
	return &Error{Message: message, StatusCode: statusCode}
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	if path == "" {
		return "", errors.New("api path is required")
	}

	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	return endpoint.String(), nil
}

func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return defaultErrorMessage
	}
	return strings.TrimSpace(body.Message)
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	return parsed, nil
}
