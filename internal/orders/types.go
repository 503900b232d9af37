package orders

import "time"

// Order statuses. PENDING is the initial state; the delivery dispatch outcome
// moves an order to PENDING_DELIVERY or DELIVERY_ASSIGNMENT_FAILED.
const (
	StatusPending                  = "PENDING"
	StatusPendingDelivery          = "PENDING_DELIVERY"
	StatusDeliveryAssignmentFailed = "DELIVERY_ASSIGNMENT_FAILED"
	StatusOutForDelivery           = "OUT_FOR_DELIVERY"
	StatusDelivered                = "DELIVERED"
	StatusCancelled                = "CANCELLED"
)

// DeliveryFee is the flat fee added to every order at creation time.
const DeliveryFee = 5.0

// Potion sizes carried on cart items. The cart service may omit the size, in
// which case it defaults to Small.
const (
	PotionSizeSmall  = "Small"
	PotionSizeMedium = "Medium"
	PotionSizeLarge  = "Large"
)

// ParseStatus validates a status string against the known set.
func ParseStatus(s string) (string, error) {
	switch s {
	case StatusPending, StatusPendingDelivery, StatusDeliveryAssignmentFailed,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// NormalizePotionSize maps an absent or unrecognized size to Small.
func NormalizePotionSize(s string) string {
	switch s {
	case PotionSizeSmall, PotionSizeMedium, PotionSizeLarge:
		return s
	}
	return PotionSizeSmall
}

// CustomerDetails is the delivery contact captured at creation time.
type CustomerDetails struct {
	Name      string  `json:"name" dynamodbav:"name"`
	Contact   string  `json:"contact" dynamodbav:"contact"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
}

// CartItem is one order line, copied from the cart snapshot at creation time.
// It is never re-derived from the cart service afterward.
type CartItem struct {
	ItemID     string  `json:"itemId" dynamodbav:"item_id"`
	ItemName   string  `json:"itemName" dynamodbav:"item_name"`
	Quantity   int     `json:"quantity" dynamodbav:"quantity"`
	PotionSize string  `json:"potionSize" dynamodbav:"potion_size"`
	Price      float64 `json:"price" dynamodbav:"price"`
	TotalPrice float64 `json:"totalPrice" dynamodbav:"total_price"`
	Image      string  `json:"image,omitempty" dynamodbav:"image,omitempty"`
}

// DriverDetails is set once a driver is assigned.
type DriverDetails struct {
	DriverID      string `json:"driverId" dynamodbav:"driver_id"`
	DriverName    string `json:"driverName" dynamodbav:"driver_name"`
	VehicleNumber string `json:"vehicleNumber" dynamodbav:"vehicle_number"`
}

// Order is the aggregate stored whole in the orders DynamoDB table.
type Order struct {
	OrderID         string          `json:"orderId" dynamodbav:"order_id"` // PK
	CustomerID      string          `json:"customerId" dynamodbav:"customer_id"`
	RestaurantID    string          `json:"restaurantId" dynamodbav:"restaurant_id"`
	CustomerDetails CustomerDetails `json:"customerDetails" dynamodbav:"customer_details"`
	CartItems       []CartItem      `json:"cartItems" dynamodbav:"cart_items"`
	OrderTotal      float64         `json:"orderTotal" dynamodbav:"order_total"`
	DeliveryFee     float64         `json:"deliveryFee" dynamodbav:"delivery_fee"`
	TotalAmount     float64         `json:"totalAmount" dynamodbav:"total_amount"`
	PaymentType     string          `json:"paymentType" dynamodbav:"payment_type"`
	Status          string          `json:"status" dynamodbav:"status"`
	DriverDetails   *DriverDetails  `json:"driverDetails,omitempty" dynamodbav:"driver_details,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" dynamodbav:"updated_at"`
}
