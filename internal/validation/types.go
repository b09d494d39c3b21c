package validation

// Item represents a single order line item.
type Item struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"` // must be >= 1
	Price     float64 `json:"price" validate:"required,gt=0"`     // price per unit, NGN
}

// CreateOrderRequest is the payload for POST /orders. The order it creates
// is pending and unpaid; payment happens in the provider's checkout widget
// and lands via the webhook.
type CreateOrderRequest struct {
	UserID      string  `json:"user_id,omitempty"`
	Email       string  `json:"email" validate:"required,email"`
	Items       []Item  `json:"items" validate:"required,min=1,dive"` // at least one item
	ShippingFee float64 `json:"shipping_fee" validate:"gte=0"`
	Tax         float64 `json:"tax" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0"`
	TotalAmount float64 `json:"total_amount" validate:"required,gt=0"` // total the client claims
}
