package paystack

import (
	"encoding/json"
	"strconv"
)

// EventChargeSuccess is the only webhook event type that triggers order
// reconciliation; every other event is acknowledged and discarded.
const EventChargeSuccess = "charge.success"

// Event is the inbound webhook payload. Amount/status/metadata here are a
// convenience only: nothing in Data may be trusted until the transaction has
// been re-verified against the Paystack API.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

// EventData carries the transaction details Paystack claims in the webhook.
type EventData struct {
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"` // kobo
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// verifyResponse is the envelope returned by GET /transaction/verify/{ref}.
type verifyResponse struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    *TransactionData `json:"data"`
}

// TransactionData is the authoritative record of a transaction as reported
// by the verification endpoint.
type TransactionData struct {
	Reference string                 `json:"reference"`
	Status    string                 `json:"status"`
	Amount    int64                  `json:"amount"` // kobo
	Currency  string                 `json:"currency"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// OrderID extracts the order id the checkout session attached to the
// transaction metadata. Paystack round-trips metadata values as arbitrary
// JSON, so both string and numeric ids are accepted.
func (t *TransactionData) OrderID() string {
	if t == nil || t.Metadata == nil {
		return ""
	}
	switch v := t.Metadata["order_id"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
