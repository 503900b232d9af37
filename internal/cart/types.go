package cart

import "time"

// Item is one cart line as served by the cart service.
type Item struct {
	ItemID     string  `json:"itemId"`
	ItemName   string  `json:"itemName"`
	Quantity   int     `json:"quantity"`
	PotionSize string  `json:"potionSize"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"totalPrice"`
	Image      string  `json:"image"`
}

// Snapshot is the cart read at order-creation time. It is not kept in sync
// with the live cart afterward.
type Snapshot struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	RestaurantID string    `json:"restaurantId"`
	Items        []Item    `json:"items"`
	TotalPrice   float64   `json:"totalPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
