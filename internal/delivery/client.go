package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client announces new orders to the delivery service.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient returns a Client bound to the delivery service base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

type createDeliveryRequest struct {
	OrderID string `json:"orderId"`
}

// Notify posts a create-delivery request carrying only the order id. The
// response body is ignored; only the success/failure signal matters.
func (c *Client) Notify(ctx context.Context, orderID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(createDeliveryRequest{OrderID: orderID}).
		Post(c.baseURL + "/api/deliveries")
	if err != nil {
		return fmt.Errorf("delivery service: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("delivery service: status %d", resp.StatusCode())
	}
	return nil
}
