package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// PaymentConfirmed is the event published after the reconciler has marked an
// order paid. The fulfillment worker consumes it. Delivery is at-least-once:
// webhook redelivery can republish the same event, so consumers must treat
// it idempotently.
type PaymentConfirmed struct {
	OrderID   string `json:"order_id"`
	Reference string `json:"reference"`
	Method    string `json:"method"`
}

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// PublishPaymentConfirmed sends a PaymentConfirmed event to the payments
// queue. The reference travels as a message attribute as well so consumers
// can dedup without parsing the body.
func (p *Publisher) PublishPaymentConfirmed(ctx context.Context, ev PaymentConfirmed) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal payment event: %w", err)
	}
	bodyStr := string(body)

	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &bodyStr,
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"reference": {
				DataType:    awsString("String"),
				StringValue: &ev.Reference,
			},
			"order_id": {
				DataType:    awsString("String"),
				StringValue: &ev.OrderID,
			},
		},
	}

	if _, err := p.SQS.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send payment event: %w", err)
	}
	return nil
}

// awsString helper
func awsString(s string) *string { return &s }
