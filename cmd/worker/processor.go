package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/TheACJ/ShopWCandy/internal/aws"
	"github.com/TheACJ/ShopWCandy/internal/orders"
)

// Processor consumes payment.confirmed events and advances the order
// lifecycle status to match the paid flag the reconciler already set.
// Delivery is at-least-once, so every transition tolerates duplicates.
type Processor struct {
	orderStore *orders.Store
}

// NewProcessor creates a worker processor with the orders store injected.
func NewProcessor(dynamo aws.DynamoDBAPI, ordersTable string) *Processor {
	return &Processor{
		orderStore: orders.NewStore(dynamo, ordersTable),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("[worker] error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg aws.PaymentConfirmed
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	log.Printf("[worker] received order=%s reference=%s", msg.OrderID, msg.Reference)

	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}
	if order.PaymentRef != "" && order.PaymentRef != msg.Reference {
		return fmt.Errorf("order=%s paid with reference %s, event carries %s", msg.OrderID, order.PaymentRef, msg.Reference)
	}

	// pending -> paid, tolerant of redelivered events
	err = p.orderStore.UpdateStatus(ctx, msg.OrderID, orders.StatusPending, orders.StatusPaid)
	if err == orders.ErrStatusMismatch {
		o2, gerr := p.orderStore.Get(ctx, msg.OrderID)
		if gerr != nil || o2 == nil {
			return fmt.Errorf("order=%s re-read after conflict failed: %v", msg.OrderID, gerr)
		}
		switch o2.Status {
		case orders.StatusPaid, orders.StatusShipped, orders.StatusDelivered:
			// duplicate event, or fulfillment already moved on
			log.Printf("[worker] duplicate payment event for order=%s (status=%s)", msg.OrderID, o2.Status)
			return nil
		case orders.StatusCancelled:
			return fmt.Errorf("payment confirmed for cancelled order=%s", msg.OrderID)
		default:
			return fmt.Errorf("unexpected status for order=%s: %s", msg.OrderID, o2.Status)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to update status to paid: %w", err)
	}

	log.Printf("[worker] order=%s is paid, ready for fulfillment", msg.OrderID)
	return nil
}
