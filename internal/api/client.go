package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/desidelights/tiffin/internal/model"
)

// Client talks to the storefront backend. All calls are bounded by the
// configured timeout; no call is retried automatically.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// New builds a client for the given base URL (no trailing slash
// required). A zero timeout falls back to 10s.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		timeout: timeout,
		log:     logger,
	}
}

// SetToken installs the bearer token used by authenticated endpoints.
func (c *Client) SetToken(token string) { c.token = token }

// authPayload is the login/register response body.
type authPayload struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login exchanges credentials for a user profile and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return model.User{}, "", err
	}
	return out.User, out.Token, nil
}

// Register creates an account and returns the profile and token.
func (c *Client) Register(ctx context.Context, name, email, password string) (model.User, string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out, false); err != nil {
		return model.User{}, "", err
	}
	return out.User, out.Token, nil
}

// Restaurants fetches the full catalog with nested menus.
func (c *Client) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	var out []model.Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Favorites returns the session's favorite restaurant IDs.
func (c *Client) Favorites(ctx context.Context) ([]int, error) {
	var out []int
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFavorite marks a restaurant as favorite.
func (c *Client) AddFavorite(ctx context.Context, restaurantID int) error {
	body := map[string]int{"restaurantId": restaurantID}
	return c.do(ctx, http.MethodPost, "/favorites", body, nil, true)
}

// RemoveFavorite unmarks a restaurant.
func (c *Client) RemoveFavorite(ctx context.Context, restaurantID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", restaurantID), nil, nil, true)
}

// Orders returns the session's order history, newest last as the
// server sends it.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderRequest is the POST /orders body: the cart snapshot, the total
// computed at submission time, and the delivery address. Card details
// never appear here.
type OrderRequest struct {
	Items   []model.OrderItem `json:"items"`
	Total   float64           `json:"total"`
	Address string            `json:"address"`
}

// CreateOrder submits an order. Each call carries a fresh
// Idempotency-Key so a double submission can be deduplicated
// server-side.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (model.Order, error) {
	var out model.Order
	err := c.doWithHeaders(ctx, http.MethodPost, "/orders", req, &out, true, map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	return c.doWithHeaders(ctx, method, path, in, out, auth, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, path string, in, out any, auth bool, headers map[string]string) error {
	endpoint := method + " " + path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Code: CodeNetwork, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("api call", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.asError(endpoint, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}

// asError maps a non-2xx response onto the error taxonomy, pulling the
// server's {"message": ...} when it sends one.
func (c *Client) asError(endpoint string, resp *http.Response) error {
	code := CodeServer
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		code = CodeAuth
	}
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	return &Error{
		Code:     code,
		Status:   resp.StatusCode,
		Endpoint: endpoint,
		Message:  payload.Message,
	}
}
