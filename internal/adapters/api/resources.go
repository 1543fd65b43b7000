package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/estate-cli/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
}

// Login exchanges credentials for a session. The returned session is
// not persisted here; that is the session controller's job.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	if resp.Token == "" || resp.User == nil {
		return domain.Session{}, errors.New("login response missing token or user")
	}

	return domain.Session{Token: resp.Token, Identity: resp.User}, nil
}

// collectionEnvelope is the platform's list wrapper. Data is kept raw
// so a non-sequence payload can be coerced instead of failing the call.
type collectionEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// ListBookings fetches up to limit bookings visible to the current
// session.
func (c *Client) ListBookings(ctx context.Context, limit int) ([]domain.Booking, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var envelope collectionEnvelope
	if err := c.do(ctx, http.MethodGet, "/bookings", query, nil, &envelope); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return decodeList[domain.Booking](envelope.Data)
}

// ListProperties fetches the property collection. The endpoint has
// returned both `{data: [...]}` and a bare array across platform
// versions; both are accepted.
func (c *Client) ListProperties(ctx context.Context) ([]domain.Property, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/properties", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope collectionEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("list properties: decode envelope: %w", err)
		}
		return decodeList[domain.Property](envelope.Data)
	}

	return decodeList[domain.Property](trimmed)
}

// decodeList coerces a raw payload to an ordered list. Anything that is
// not a JSON array — null, an object, a bare value — decodes to an
// empty list so downstream consumers never see type drift.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// ResolveMediaURL turns a server-relative media path into an absolute
// URL against the API host. Absolute URLs pass through untouched.
func ResolveMediaURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}

	host := strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api/v1")
	return host + "/" + strings.TrimLeft(path, "/")
}
