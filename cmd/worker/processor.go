package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/nomnom/order-service/internal/aws"
	"github.com/nomnom/order-service/internal/orders"
)

// Processor consumes order lifecycle events and records customer notifications.
// Actual SMS/email delivery belongs to the notification channel providers; the
// worker logs the notification line and emits per-status metrics.
type Processor struct {
	orderStore *orders.Store
	metrics    *aws.MetricsEmitter
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, ordersTable, metricsNamespace string) *Processor {
	return &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable),
		metrics:    aws.NewMetricsEmitter(clients.CloudWatch, metricsNamespace),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg orderEventMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] received order=%s customer=%s status=%s", msg.OrderID, msg.CustomerID, msg.Status)

	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	log.Printf("[worker] notify customer=%s (%s): order %s is now %s",
		order.CustomerID, order.CustomerDetails.Contact, order.OrderID, order.Status)

	if err := p.metrics.EmitCount(ctx, aws.MetricOrderEventsProcessed, 1, map[string]string{"Status": order.Status}); err != nil {
		// metrics are best-effort; keep the message off the DLQ
		log.Printf("[worker] failed to emit metric: %v", err)
	}

	return nil
}
