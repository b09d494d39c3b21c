package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TheACJ/ShopWCandy/internal/aws"
	"github.com/TheACJ/ShopWCandy/internal/orders"
	"github.com/TheACJ/ShopWCandy/internal/validation"
)

// OrdersConfig groups dependencies for the order API.
type OrdersConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	OrdersTable    string
}

// RegisterOrdersRoutes registers the storefront order API: checkout creates
// a pending order here, then opens the provider's payment widget with the
// order id in the transaction metadata; the webhook marks the order paid.
func RegisterOrdersRoutes(r *gin.Engine, cfg OrdersConfig) {
	v := validation.New()
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)

	r.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		order := orders.Order{
			OrderID:     uuid.NewString(),
			OrderNumber: newOrderNumber(),
			UserID:      req.UserID,
			Email:       req.Email,
			Status:      orders.StatusPending,
			TotalAmount: req.TotalAmount,
			ShippingFee: req.ShippingFee,
			Discount:    req.Discount,
			Currency:    "NGN",
			Paid:        false,
		}
		items := make([]map[string]interface{}, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, map[string]interface{}{
				"product_id": it.ProductID,
				"name":       it.Name,
				"quantity":   it.Quantity,
				"price":      it.Price,
			})
		}
		order.Items = items

		if err := ordersStore.Create(ctx, order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_create_failed"})
			return
		}

		c.Header("Location", fmt.Sprintf("/orders/%s", order.OrderID))
		c.JSON(http.StatusCreated, gin.H{
			"order_id":     order.OrderID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
		})
	})

	r.GET("/orders/:id", func(c *gin.Context) {
		o, err := ordersStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_lookup_failed"})
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, o)
	})

	// the post-payment confirmation screen polls by the provider reference
	r.GET("/payments/confirm/:reference", func(c *gin.Context) {
		o, err := ordersStore.GetByReference(c.Request.Context(), c.Param("reference"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_lookup_failed"})
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order_id":     o.OrderID,
			"order_number": o.OrderNumber,
			"paid":         o.Paid,
			"status":       o.Status,
		})
	})
}

// newOrderNumber builds the human-readable order number assigned at
// creation, e.g. SWC-20260831-7F3A2C.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("SWC-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
