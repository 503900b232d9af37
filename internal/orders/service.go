package orders

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nomnom/order-service/internal/aws"
	"github.com/nomnom/order-service/internal/cart"
	"github.com/nomnom/order-service/internal/idempotency"
)

// CartFetcher reads a customer's cart snapshot from the cart service.
type CartFetcher interface {
	Fetch(ctx context.Context, customerID, restaurantID string) (*cart.Snapshot, error)
}

// DeliveryNotifier announces a new order to the delivery service.
type DeliveryNotifier interface {
	Notify(ctx context.Context, orderID string) error
}

// EventPublisher fans order lifecycle events out to the notification queue.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev aws.OrderEvent) error
}

// MetricEmitter pushes operational counters.
type MetricEmitter interface {
	EmitCount(ctx context.Context, name string, value float64, dims map[string]string) error
}

// ServiceConfig groups the collaborators of the order service. Events,
// Metrics and IdempotencyTable are optional.
type ServiceConfig struct {
	Store            *Store
	Cart             CartFetcher
	Delivery         DeliveryNotifier
	Events           EventPublisher
	Metrics          MetricEmitter
	IdempotencyTable string
	IdempotencyTTL   time.Duration
	DispatchTimeout  time.Duration
}

// Service implements order assembly and the order status state machine.
type Service struct {
	store            *Store
	cart             CartFetcher
	delivery         DeliveryNotifier
	events           EventPublisher
	metrics          MetricEmitter
	idempotencyTable string
	idempotencyTTL   time.Duration
	dispatchTimeout  time.Duration
	nowFunc          func() time.Time
}

// NewService builds a Service from config, applying defaults.
func NewService(cfg ServiceConfig) *Service {
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = 5 * time.Second
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 48 * time.Hour
	}
	return &Service{
		store:            cfg.Store,
		cart:             cfg.Cart,
		delivery:         cfg.Delivery,
		events:           cfg.Events,
		metrics:          cfg.Metrics,
		idempotencyTable: cfg.IdempotencyTable,
		idempotencyTTL:   cfg.IdempotencyTTL,
		dispatchTimeout:  cfg.DispatchTimeout,
		nowFunc:          time.Now,
	}
}

// CreateOrderInput is the caller-supplied part of a new order. IdempotencyKey
// is optional; when set, duplicate submissions with the same key are rejected
// with ErrDuplicateRequest.
type CreateOrderInput struct {
	CustomerID      string
	RestaurantID    string
	CustomerName    string
	CustomerContact string
	Longitude       float64
	Latitude        float64
	PaymentType     string
	IdempotencyKey  string
}

// CreateOrder fetches the cart snapshot, assembles the aggregate, persists it
// and fires the delivery dispatch. Cart failures abort the operation before
// anything is persisted; the dispatch outcome never rolls the order back.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	snap, err := s.cart.Fetch(ctx, in.CustomerID, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	var orderTotal float64
	for _, it := range snap.Items {
		orderTotal += it.TotalPrice
	}

	items := make([]CartItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, CartItem{
			ItemID:     it.ItemID,
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			PotionSize: NormalizePotionSize(it.PotionSize),
			Price:      it.Price,
			TotalPrice: it.TotalPrice,
			Image:      it.Image,
		})
	}

	now := s.nowFunc().UTC()
	order := Order{
		OrderID:      uuid.NewString(),
		CustomerID:   in.CustomerID,
		RestaurantID: in.RestaurantID,
		CustomerDetails: CustomerDetails{
			Name:      in.CustomerName,
			Contact:   in.CustomerContact,
			Longitude: in.Longitude,
			Latitude:  in.Latitude,
		},
		CartItems:   items,
		OrderTotal:  orderTotal,
		DeliveryFee: DeliveryFee,
		TotalAmount: orderTotal + DeliveryFee,
		PaymentType: in.PaymentType,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.IdempotencyKey != "" && s.idempotencyTable != "" {
		rec := idempotency.IdempotencyRecord{
			IdempotencyKey: in.IdempotencyKey,
			Status:         idempotency.StatusInProgress,
			OrderID:        order.OrderID,
			CreatedAt:      now,
			UpdatedAt:      now,
			ExpiresAt:      now.Add(s.idempotencyTTL).Unix(),
		}
		if err := s.store.SaveWithIdempotency(ctx, s.idempotencyTable, rec, order, s.idempotencyTTL); err != nil {
			return nil, err
		}
	} else {
		if err := s.store.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	// Best-effort dispatch: the creation response never waits for it.
	if s.delivery != nil {
		go s.dispatchDelivery(order.OrderID)
	}

	s.publishEvent(ctx, order)
	s.emitCount(ctx, aws.MetricOrdersCreated, nil)

	return &order, nil
}

// dispatchDelivery notifies the delivery service and records the outcome as an
// order status through the same update path the public API uses.
func (s *Service) dispatchDelivery(orderID string) {
	notifyCtx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
	err := s.delivery.Notify(notifyCtx, orderID)
	cancel()

	// The notify context may already be exhausted; the outcome write gets its own.
	ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
	defer cancel()

	if err != nil {
		log.Printf("[order-service] delivery dispatch failed for order=%s: %v", orderID, err)
		s.emitCount(ctx, aws.MetricDeliveryDispatchFailed, nil)
		if _, uerr := s.UpdateStatus(ctx, orderID, StatusDeliveryAssignmentFailed); uerr != nil {
			log.Printf("[order-service] failed to record dispatch failure for order=%s: %v", orderID, uerr)
		}
		return
	}
	if _, err := s.UpdateStatus(ctx, orderID, StatusPendingDelivery); err != nil {
		log.Printf("[order-service] failed to record dispatch success for order=%s: %v", orderID, err)
	}
}

// GetOrder loads one order by id.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// ListOrders returns all orders.
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.store.List(ctx)
}

// ListByCustomer returns all orders of one customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

// UpdateStatus overwrites the order status after validating the value against
// the known set. No transition-legality check is applied beyond membership;
// cancellation is the only guarded transition (see CancelOrder).
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	status, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Status = status
	o.UpdatedAt = s.nowFunc().UTC()
	if err := s.store.Save(ctx, *o); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, *o)
	return o, nil
}

// CancelOrder moves a PENDING order to CANCELLED. Any other current status is
// rejected with ErrInvalidTransition. The write is conditional on the stored
// status still being PENDING, so a concurrent transition loses exactly one of
// the two racing writes.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, ErrInvalidTransition
	}
	o.Status = StatusCancelled
	o.UpdatedAt = s.nowFunc().UTC()
	if err := s.store.SaveExpectStatus(ctx, *o, StatusPending); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, *o)
	s.emitCount(ctx, aws.MetricOrdersCancelled, nil)
	return o, nil
}

// AssignDriver sets the driver details and forces the status to
// OUT_FOR_DELIVERY. No precondition on the prior status.
func (s *Service) AssignDriver(ctx context.Context, orderID string, driver DriverDetails) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.DriverDetails = &driver
	o.Status = StatusOutForDelivery
	o.UpdatedAt = s.nowFunc().UTC()
	if err := s.store.Save(ctx, *o); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, *o)
	return o, nil
}

// ApplyDiscount subtracts amount from the total, flooring at zero.
func (s *Service) ApplyDiscount(ctx context.Context, orderID string, amount float64) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	discounted := o.TotalAmount - amount
	if discounted < 0 {
		discounted = 0
	}
	o.TotalAmount = discounted
	o.UpdatedAt = s.nowFunc().UTC()
	if err := s.store.Save(ctx, *o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) publishEvent(ctx context.Context, o Order) {
	if s.events == nil {
		return
	}
	ev := aws.OrderEvent{OrderID: o.OrderID, CustomerID: o.CustomerID, Status: o.Status}
	if err := s.events.PublishOrderEvent(ctx, ev); err != nil {
		log.Printf("[order-service] failed to publish order event order=%s status=%s: %v", o.OrderID, o.Status, err)
	}
}

func (s *Service) emitCount(ctx context.Context, metric string, dims map[string]string) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.EmitCount(ctx, metric, 1, dims); err != nil {
		log.Printf("[order-service] failed to emit metric %s: %v", metric, err)
	}
}
