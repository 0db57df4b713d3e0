package fulfillment

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

	"intake-backend/internal/shared/config"
)

const maxErrorBody = 4 << 10

// Client talks to the ShipStation v1 REST API with basic auth.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient returns ErrNotConfigured when the key or secret is empty.
func NewClient(cfg config.ShipStationConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://ssapi.shipstation.com"
	}
	return &Client{
		baseURL:   base,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateOrder posts order to /orders/createorder.
func (c *Client) CreateOrder(ctx context.Context, order Order) (CreatedOrder, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return CreatedOrder{}, err
	}
	var created CreatedOrder
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/orders/createorder", payload, &created); err != nil {
		return CreatedOrder{}, fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}
	return created, nil
}

// ListStores returns the stores on the account; used to find the store id.
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/stores", nil, &stores); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// GetShipments fetches a webhook resource_url. Only URLs on the configured host
// are fetched so a forged webhook cannot make us send credentials elsewhere.
func (c *Client) GetShipments(ctx context.Context, resourceURL string) ([]Shipment, error) {
	if !c.sameHost(resourceURL) {
		return nil, ErrForeignHost
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, resourceURL, nil, &raw); err != nil {
		return nil, fmt.Errorf("get shipments: %w", err)
	}
	return decodeShipments(raw)
}

func decodeShipments(raw json.RawMessage) ([]Shipment, error) {
	var page struct {
		Shipments *[]Shipment `json:"shipments"`
	}
	if err := json.Unmarshal(raw, &page); err == nil && page.Shipments != nil {
		return *page.Shipments, nil
	}
	var one Shipment
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("shipments response parse: %w", err)
	}
	if one.TrackingNumber == "" && one.ShipmentID == 0 {
		return nil, nil
	}
	return []Shipment{one}, nil
}

func (c *Client) sameHost(raw string) bool {
	target, err := url.Parse(raw)
	if err != nil || target.Host == "" {
		return false
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(target.Host, base.Host) && target.Scheme == base.Scheme
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("shipstation response parse: %w", err)
	}
	return nil
}
