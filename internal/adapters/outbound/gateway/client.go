package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dibella/orderdesk/internal/domain"
)

// IdempotencyHeader carries a fresh key on every create and update.
const IdempotencyHeader = "Idempotency-Key"

const maxBodyBytes = 4 << 20

// StatusError is a non-2xx response from the remote API.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client implements domain.OrderGateway over the REST/JSON order API.
type Client struct {
	cfg    domain.GatewayConfig
	http   *http.Client
	logger *zap.Logger
	newKey func() string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIdempotencyKeys replaces the uuid key generator.
func WithIdempotencyKeys(fn func() string) Option {
	return func(c *Client) { c.newKey = fn }
}

// New creates a gateway client for the API described by cfg.
func New(cfg domain.GatewayConfig, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: zap.NewNop(),
		newKey: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("gateway")
	return c
}

// BaseURL identifies the API this client talks to.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

func (c *Client) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	var rows []wireOrderSummary
	if err := c.do(ctx, http.MethodGet, c.cfg.OrderURL(0), nil, &rows); err != nil {
		return nil, err
	}
	return toSummaries(rows), nil
}

func (c *Client) GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	var w wireOrder
	if err := c.do(ctx, http.MethodGet, c.cfg.OrderURL(id), nil, &w); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrOrderNotFound, err)
		}
		return nil, err
	}
	order := toOrder(w)
	if order.ID == 0 {
		order.ID = id
	}
	return order, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (domain.OrderID, error) {
	var created wireCreated
	if err := c.do(ctx, http.MethodPost, c.cfg.OrderURL(0), toSubmission(order), &created); err != nil {
		var decodeErr *decodeError
		if errors.As(err, &decodeErr) {
			// The order was accepted; only the echo was unreadable.
			c.logger.Debug("create response not decodable", zap.Error(err))
			return 0, nil
		}
		return 0, err
	}
	return domain.OrderID(created.ID), nil
}

func (c *Client) UpdateOrder(ctx context.Context, order domain.Order) error {
	if order.ID == 0 {
		return errors.New("update requires an order id")
	}
	err := c.do(ctx, http.MethodPut, c.cfg.OrderURL(order.ID), toSubmission(order), nil)
	if isNotFound(err) {
		return fmt.Errorf("%w: %v", domain.ErrOrderNotFound, err)
	}
	return err
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []wireProduct
	if err := c.do(ctx, http.MethodGet, c.cfg.ProductURL(), nil, &rows); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

type decodeError struct {
	url string
	err error
}

func (e *decodeError) Error() string { return fmt.Sprintf("decoding response from %s: %v", e.url, e.err) }
func (e *decodeError) Unwrap() error { return e.err }

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(IdempotencyHeader, c.newKey())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", url, err)
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(truncate(data, 512))),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &decodeError{url: url, err: err}
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
