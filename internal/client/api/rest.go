package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

// requestIDHeader carries a per-request correlation id so client-side logs
// can be matched against server access logs.
const requestIDHeader = "X-Request-Id"

// RESTClient talks JSON over HTTP to the User Management API.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

// NewRESTClient builds a client for the given base URL, e.g.
// "http://127.0.0.1:8000". The timeout applies per request.
func NewRESTClient(baseURL string, timeout time.Duration) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// do performs one JSON round trip. A nil body sends no payload, a nil out
// discards the response body. Non-2xx responses become *APIError with the
// server's detail string; transport failures are wrapped as ErrUnavailable.
func (c *RESTClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError extracts the {detail} envelope from an error response.
// A body that is not valid JSON still produces a usable APIError.
func parseAPIError(resp *http.Response) error {
	var env struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &env)
	return &APIError{Status: resp.StatusCode, Detail: env.Detail}
}

// userEnvelope is the {message, user} shape shared by register, login and
// update responses.
type userEnvelope struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

func (c *RESTClient) Register(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: string(password)}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/register", req, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *RESTClient) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: string(password)}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

// ListUsers returns the full user collection together with the server-side
// origin marker ("cache" or "database").
func (c *RESTClient) ListUsers(ctx context.Context) ([]models.User, string, error) {
	var env struct {
		Users  []models.User `json:"users"`
		Source string        `json:"source"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &env); err != nil {
		return nil, "", err
	}
	return env.Users, env.Source, nil
}

func (c *RESTClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*models.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), upd, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *RESTClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

func (c *RESTClient) RedisStats(ctx context.Context) (*models.RedisStats, error) {
	var s models.RedisStats
	if err := c.do(ctx, http.MethodGet, "/api/redis/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Ping probes the API root. Anything other than status "online" counts as
// unavailable, matching how the mode watcher interprets the result.
func (c *RESTClient) Ping(ctx context.Context) error {
	var env struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/", nil, &env); err != nil {
		return err
	}
	if env.Status != "online" {
		return ErrUnavailable
	}
	return nil
}

// Close exists to satisfy Client; net/http needs no explicit teardown.
func (c *RESTClient) Close() error { return nil }
