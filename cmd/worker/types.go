package main

// orderEventMessage is the payload published by the API on order creation and
// status changes. It mirrors aws.OrderEvent.
type orderEventMessage struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}
