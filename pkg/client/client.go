package client

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
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// DefaultBaseURL is where the commerce API listens in a local setup.
const DefaultBaseURL = "http://localhost:5000/api"

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token returns t.
func (t StaticToken) Token() string { return string(t) }

// Client is the storefront API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	reads      *gobreaker.CircuitBreaker[struct{}]
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request traces and breaker transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a new API client. Every request asks tokens for the bearer token.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reads = newReadBreaker("storefront-api-reads", c.log)
	return c
}

// --- Auth ---

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var env struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/user/login", creds, &env); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if env.Token == "" {
		return "", fmt.Errorf("client.Login: %w: response has no token", domain.ErrValidation)
	}
	return env.Token, nil
}

// Register creates a new account. The response body is not used.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	if err := c.post(ctx, "/user/register", reg, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// --- Catalog ---

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	params := url.Values{}
	if f.Brand != "" {
		params.Set("brand", f.Brand)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}

	var env struct {
		Data *[]domain.Product `json:"data"`
	}
	if err := c.get(ctx, "/product?"+params.Encode(), &env); err != nil {
		return nil, fmt.Errorf("client.ListProducts: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("client.ListProducts: %w: response has no data", domain.ErrValidation)
	}
	return *env.Data, nil
}

// GetProduct fetches a single product snapshot by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var env struct {
		Product *domain.Product `json:"Product"`
	}
	if err := c.get(ctx, "/product/"+url.PathEscape(id), &env); err != nil {
		return nil, fmt.Errorf("client.GetProduct: %w", err)
	}
	if env.Product == nil {
		return nil, fmt.Errorf("client.GetProduct: %w: response has no Product", domain.ErrValidation)
	}
	if err := env.Product.Validate(); err != nil {
		return nil, fmt.Errorf("client.GetProduct: %w", err)
	}
	return env.Product, nil
}

// --- Cart ---

type cartEnvelope struct {
	GetData *domain.Cart `json:"getdata"`
}

func (e cartEnvelope) cart() (domain.Cart, error) {
	if e.GetData == nil {
		return domain.Cart{}, fmt.Errorf("%w: response has no getdata", domain.ErrValidation)
	}
	if err := e.GetData.Validate(); err != nil {
		return domain.Cart{}, err
	}
	return *e.GetData, nil
}

// GetCart fetches the authenticated user's cart.
func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	var env cartEnvelope
	if err := c.get(ctx, "/cart/items", &env); err != nil {
		return domain.Cart{}, fmt.Errorf("client.GetCart: %w", err)
	}
	cart, err := env.cart()
	if err != nil {
		return domain.Cart{}, fmt.Errorf("client.GetCart: %w", err)
	}
	return cart, nil
}

// ReplaceCart replaces the whole server-side cart with items and returns the
// cart the server stored.
func (c *Client) ReplaceCart(ctx context.Context, items []domain.CartItemInput) (domain.Cart, error) {
	if items == nil {
		items = []domain.CartItemInput{}
	}
	body := struct {
		Carts []domain.CartItemInput `json:"carts"`
	}{Carts: items}

	var env cartEnvelope
	if err := c.post(ctx, "/cart", body, &env); err != nil {
		return domain.Cart{}, fmt.Errorf("client.ReplaceCart: %w", err)
	}
	cart, err := env.cart()
	if err != nil {
		return domain.Cart{}, fmt.Errorf("client.ReplaceCart: %w", err)
	}
	return cart, nil
}

// --- Orders ---

// CreateOrder submits draft. It is never retried.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.OrderResult, error) {
	var env struct {
		Data *domain.OrderResult `json:"data"`
	}
	if err := c.post(ctx, "/order", draft, &env); err != nil {
		return domain.OrderResult{}, fmt.Errorf("client.CreateOrder: %w", err)
	}
	if env.Data == nil || env.Data.OrderID == "" {
		return domain.OrderResult{}, fmt.Errorf("client.CreateOrder: %w: response has no order id", domain.ErrValidation)
	}
	return *env.Data, nil
}

// ListOrders returns the authenticated customer's orders.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := c.orders(ctx, "/orders")
	if err != nil {
		return nil, fmt.Errorf("client.ListOrders: %w", err)
	}
	return orders, nil
}

// SellerOrders returns the orders containing the authenticated seller's products.
func (c *Client) SellerOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := c.orders(ctx, "/product/seller")
	if err != nil {
		return nil, fmt.Errorf("client.SellerOrders: %w", err)
	}
	return orders, nil
}

func (c *Client) orders(ctx context.Context, path string) ([]domain.Order, error) {
	var env struct {
		Orders *[]domain.Order `json:"orders"`
	}
	if err := c.get(ctx, path, &env); err != nil {
		return nil, err
	}
	if env.Orders == nil {
		return nil, fmt.Errorf("%w: response has no orders", domain.ErrValidation)
	}
	return *env.Orders, nil
}

// --- HTTP helpers ---

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

// get runs through the read breaker. Writes never do: an order or cart push
// that fails must surface as-is, not be short-circuited.
func (c *Client) get(ctx context.Context, path string, out any) error {
	_, err := c.reads.Execute(func() (struct{}, error) {
		return struct{}{}, c.doRequest(ctx, http.MethodGet, path, nil, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path),
			zap.String("request_id", reqID), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug("request", zap.String("method", method), zap.String("path", path),
		zap.String("request_id", reqID), zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrValidation, err)
		}
	}
	return nil
}

// errorMessage pulls the server's reason out of a {message} or {error} body.
func errorMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	return string(body)
}
