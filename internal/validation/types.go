package validation

// CreateOrderRequest is the payload for POST /api/order/create.
type CreateOrderRequest struct {
	CustomerID      string  `json:"customerId" validate:"required"`
	RestaurantID    string  `json:"restaurantId" validate:"required"`
	CustomerName    string  `json:"customerName" validate:"required"`
	CustomerContact string  `json:"customerContact" validate:"required"`
	Longitude       float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude        float64 `json:"latitude" validate:"min=-90,max=90"`
	PaymentType     string  `json:"paymentType" validate:"required"` // e.g. "CASH", "CARD"
}

// AssignDriverRequest is the payload for PUT /api/order/assign-driver/{orderId}.
type AssignDriverRequest struct {
	DriverID      string `json:"driverId" validate:"required"`
	DriverName    string `json:"driverName" validate:"required"`
	VehicleNumber string `json:"vehicleNumber" validate:"required"`
}

// ApplyDiscountRequest is the payload for PUT /api/order/apply-discount/{orderId}.
// The amount is unconstrained; zero and negative values are accepted and the
// service floors the resulting total at zero.
type ApplyDiscountRequest struct {
	DiscountAmount float64 `json:"discountAmount"`
}
