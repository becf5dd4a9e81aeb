// Package inventory is the HTTP/JSON client for the remote inventory
// and commerce API. The storefront owns no pricing or order logic; it
// consumes what this API serves and submits orders back to it.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linkon63/neocomerze/internal/domain"
)

var (
	ErrUnavailable = errors.New("inventory api unavailable")
)

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:    "inventory-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Missing records are answers, not outages.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound)
		},
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// envelope is the API's standard response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		if resp.StatusCode >= 400 {
			var env envelope
			if json.Unmarshal(raw, &env) == nil && env.Message != "" {
				return nil, fmt.Errorf("inventory api: %s", env.Message)
			}
			return nil, fmt.Errorf("inventory api: status %d", resp.StatusCode)
		}
		return raw, nil
	})
}

// data unwraps the response envelope, tolerating bare payloads without
// a "data" wrapper.
func data(raw []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	var dtos []productDTO
	if err := json.Unmarshal(data(raw), &dtos); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	products := make([]domain.Product, len(dtos))
	for i, dto := range dtos {
		products[i] = mapProduct(dto)
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var dto productDTO
	if err := json.Unmarshal(data(raw), &dto); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	if dto.ID == 0 {
		return nil, domain.ErrNotFound
	}
	product := mapProduct(dto)
	return &product, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	raw, err := c.do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	var dtos []categoryDTO
	if err := json.Unmarshal(data(raw), &dtos); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	categories := make([]domain.Category, len(dtos))
	for i, dto := range dtos {
		categories[i] = domain.Category{ID: dto.ID, Name: localized(dto.Name, "")}
	}
	return categories, nil
}

func (c *Client) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	raw, err := c.do(ctx, http.MethodGet, "/campaigns?status=true", nil)
	if err != nil {
		return nil, err
	}
	var dtos []campaignDTO
	if err := json.Unmarshal(data(raw), &dtos); err != nil {
		return nil, fmt.Errorf("decode campaigns: %w", err)
	}
	campaigns := make([]domain.Campaign, len(dtos))
	for i, dto := range dtos {
		campaigns[i] = domain.Campaign{
			ID:     dto.ID,
			Title:  localized(dto.Title, ""),
			Images: mediaURLs(dto.Media),
		}
	}
	return campaigns, nil
}

func (c *Client) GeneralInfo(ctx context.Context) (*domain.GeneralInfo, error) {
	raw, err := c.do(ctx, http.MethodGet, "/general-infos", nil)
	if err != nil {
		return nil, err
	}
	var dto generalInfoDTO
	if err := json.Unmarshal(data(raw), &dto); err != nil {
		return nil, fmt.Errorf("decode general info: %w", err)
	}
	return &domain.GeneralInfo{
		ShopName:     dto.ShopName,
		TopBarSlogan: dto.TopBarSlogan,
		Logos:        mediaURLs(dto.Media),
	}, nil
}

// CreateCustomer provisions a customer record for a new account and
// returns its id.
func (c *Client) CreateCustomer(ctx context.Context, phone string) (int64, error) {
	raw, err := c.do(ctx, http.MethodPost, "/customers", map[string]string{"phone": phone})
	if err != nil {
		return 0, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return 0, fmt.Errorf("decode customer response: %w", err)
	}
	if env.Status != "success" {
		if env.Message != "" {
			return 0, fmt.Errorf("inventory api: %s", env.Message)
		}
		return 0, errors.New("inventory api: customer creation failed")
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == 0 {
		return 0, errors.New("inventory api: customer response missing id")
	}
	return created.ID, nil
}

func (c *Client) Customer(ctx context.Context, id int64) (*domain.Customer, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var dto customerDTO
	if err := json.Unmarshal(data(raw), &dto); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	customer := mapCustomer(dto)
	if customer.ID == 0 {
		customer.ID = id
	}
	return &customer, nil
}

// CreateOrder submits a cash-on-delivery order and returns the order id
// when the API provides one.
func (c *Client) CreateOrder(ctx context.Context, order domain.OrderRequest) (*domain.Order, error) {
	raw, err := c.do(ctx, http.MethodPost, "/orders", order)
	if err != nil {
		return nil, err
	}
	var dto struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data(raw), &dto); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &domain.Order{ID: dto.ID, Status: dto.Status}, nil
}
