package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheACJ/ShopWCandy/internal/aws"
	"github.com/TheACJ/ShopWCandy/internal/orders"
	"github.com/TheACJ/ShopWCandy/internal/paystack"
	"github.com/TheACJ/ShopWCandy/internal/signature"
)

// SignatureHeader carries the hex-encoded HMAC-SHA512 of the raw request
// body, computed by Paystack with the shared webhook secret.
const SignatureHeader = "x-paystack-signature"

// WebhookConfig groups dependencies for the webhook handler.
type WebhookConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI
	OrdersTable      string
	QueueURL         string
	WebhookSecret    string
	Verifier         paystack.TransactionVerifier
}

// RegisterWebhookRoutes registers the payment webhook ingress.
//
// The handler never trusts the webhook body: the signature proves the bytes
// came from the provider, and a separate server-to-server verification call
// proves the transaction actually succeeded. Only then is the order marked
// paid, with a write that is safe under duplicate and concurrent delivery.
// Any failure after authentication answers 500 so the provider redelivers;
// redelivery is harmless because the write is an idempotent set.
func RegisterWebhookRoutes(r *gin.Engine, cfg WebhookConfig) {
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	metrics := aws.NewMetricsRecorder(cfg.CloudWatchClient)
	var publisher *aws.Publisher
	if cfg.SQSClient != nil && cfg.QueueURL != "" {
		publisher = aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
	}

	r.POST("/webhooks/paystack", func(c *gin.Context) {
		ctx := c.Request.Context()

		// Step 1: signature presence. Nothing else runs without it.
		sig := c.GetHeader(SignatureHeader)
		if sig == "" {
			f := failure(failAuthMissing, "missing signature header", nil)
			metrics.Record(ctx, string(f.kind))
			c.String(f.status(), "Unauthorized")
			return
		}

		// Step 2: verify the HMAC over the raw bytes exactly as received.
		raw, err := c.GetRawData()
		if err != nil {
			f := failure(failMalformed, "read request body", err)
			log.Printf("[webhook] %v", f)
			metrics.Record(ctx, string(f.kind))
			c.JSON(f.status(), gin.H{"error": f.msg})
			return
		}
		if !signature.Valid(raw, sig, cfg.WebhookSecret) {
			f := failure(failAuthInvalid, "invalid signature", nil)
			log.Printf("[webhook] rejected delivery: %v", f)
			metrics.Record(ctx, string(f.kind))
			c.String(f.status(), "Invalid signature")
			return
		}

		// Step 3: parse the authenticated body and filter events.
		var ev paystack.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			f := failure(failMalformed, "malformed event body", err)
			log.Printf("[webhook] %v", f)
			metrics.Record(ctx, string(f.kind))
			c.JSON(f.status(), gin.H{"error": f.msg})
			return
		}
		if ev.Event != paystack.EventChargeSuccess {
			// acknowledged and discarded; a non-2xx would make the
			// provider retry an event we will never act on
			metrics.Record(ctx, "ignored_event")
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		// Step 4: re-verify with the provider's API. The webhook body's
		// amount/status/metadata are a convenience, not proof.
		tx, err := cfg.Verifier.VerifyTransaction(ctx, ev.Data.Reference)
		if err != nil {
			fail(c, metrics, failure(failVerification, "transaction verification failed", err), ev.Event, ev.Data.Reference)
			return
		}
		if tx.Status != "success" {
			fail(c, metrics, failure(failVerification, "transaction not successful", nil), ev.Event, ev.Data.Reference)
			return
		}

		// Step 5: idempotent reconciliation. The order id comes from the
		// VERIFIED response metadata, never from the webhook body.
		orderID := tx.OrderID()
		if orderID == "" {
			fail(c, metrics, failure(failVerification, "verified transaction has no order id", nil), ev.Event, ev.Data.Reference)
			return
		}
		reference := tx.Reference
		if reference == "" {
			reference = ev.Data.Reference
		}
		if err := ordersStore.MarkPaid(ctx, orderID, reference, orders.MethodPaystack); err != nil {
			// ErrOrderNotFound: the verified metadata names an order the
			// checkout never created (forged metadata, or the order write
			// has not landed yet). Nothing was written; 500 lets the
			// provider redeliver in case it is the latter.
			msg := "order update failed"
			if errors.Is(err, orders.ErrOrderNotFound) {
				msg = "verified transaction references unknown order"
			}
			fail(c, metrics, failure(failPersistence, msg, err), ev.Event, reference)
			return
		}

		// Kick off fulfillment. A publish failure also answers 500: the
		// provider redelivers, MarkPaid no-ops, and the publish is retried.
		if publisher != nil {
			pc := aws.PaymentConfirmed{OrderID: orderID, Reference: reference, Method: orders.MethodPaystack}
			if err := publisher.PublishPaymentConfirmed(ctx, pc); err != nil {
				fail(c, metrics, failure(failPersistence, "payment event publish failed", err), ev.Event, reference)
				return
			}
		}

		metrics.Record(ctx, "success")
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
}

// fail logs the failure with enough context to diagnose (event, reference,
// stage) and answers with the kind's status and the safe message only.
func fail(c *gin.Context, metrics *aws.MetricsRecorder, f *webhookFailure, event, reference string) {
	log.Printf("[webhook] event=%s reference=%s %v", event, reference, f)
	metrics.Record(c.Request.Context(), string(f.kind))
	c.JSON(f.status(), gin.H{"error": f.msg})
}
