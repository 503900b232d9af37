package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnavailable indicates the cart service could not be reached or
	// answered with a non-2xx status. Order creation aborts on it.
	ErrUnavailable = errors.New("cart service unavailable")

	// ErrEmpty indicates the fetched cart has no items.
	ErrEmpty = errors.New("cart is empty")
)

// Client reads cart snapshots from the cart service.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient returns a Client bound to the cart service base URL. The timeout
// bounds every fetch; the cart read is on the order-creation critical path.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

// Fetch reads the current cart for a customer at a restaurant and returns it
// as an immutable snapshot. No retry is performed.
func (c *Client) Fetch(ctx context.Context, customerID, restaurantID string) (*Snapshot, error) {
	var snap Snapshot
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&snap).
		Get(fmt.Sprintf("%s/%s/%s", c.baseURL, customerID, restaurantID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	if len(snap.Items) == 0 {
		return nil, ErrEmpty
	}
	return &snap, nil
}
