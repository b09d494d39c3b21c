package orders

import "time"

// Order lifecycle statuses
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Payment methods recorded on a reconciled order.
const (
	MethodPaystack    = "paystack"
	MethodFlutterwave = "flutterwave"
)

// Order represents the item stored in the orders DynamoDB table.
//
// Paid and PaymentReference are written exactly once, by the webhook
// reconciler. Once set, PaymentReference is immutable: redeliveries with the
// same reference are no-ops and a different reference for the same order is
// rejected at write time.
type Order struct {
	OrderID     string                   `dynamodbav:"order_id" json:"order_id"`         // PK
	OrderNumber string                   `dynamodbav:"order_number" json:"order_number"` // human-readable, assigned at creation
	UserID      string                   `dynamodbav:"user_id,omitempty" json:"user_id,omitempty"`
	Email       string                   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Status      string                   `dynamodbav:"status" json:"status"` // pending | paid | shipped | delivered | cancelled
	TotalAmount float64                  `dynamodbav:"total_amount" json:"total_amount"`
	ShippingFee float64                  `dynamodbav:"shipping_fee" json:"shipping_fee"`
	Discount    float64                  `dynamodbav:"discount" json:"discount"`
	Currency    string                   `dynamodbav:"currency" json:"currency"`
	Items       []map[string]interface{} `dynamodbav:"items,omitempty" json:"items,omitempty"`
	Paid        bool                     `dynamodbav:"paid" json:"paid"`
	PaymentRef  string                   `dynamodbav:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	PaymentMeth string                   `dynamodbav:"payment_method,omitempty" json:"payment_method,omitempty"`
	CreatedAt   time.Time                `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt   time.Time                `dynamodbav:"updated_at" json:"updated_at"`
}
