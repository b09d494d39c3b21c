package validation

import (
	"fmt"
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for CreateOrderRequest to ensure
	// the provided total matches the items plus fees.
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})

	return v
}

// createOrderStructValidation verifies
// sum(quantity*price) + shipping + tax - discount == total (compared in kobo
// to avoid float rounding issues)
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	var sum float64
	for _, it := range req.Items {
		sum += float64(it.Quantity) * it.Price
	}
	sum += req.ShippingFee + req.Tax - req.Discount

	sumKobo := int64(math.Round(sum * 100))
	totalKobo := int64(math.Round(req.TotalAmount * 100))
	if sumKobo != totalKobo {
		sl.ReportError(req.TotalAmount, "total_amount", "TotalAmount", "total_match_items",
			fmt.Sprintf("items+fees %.2f != total %.2f", sum, req.TotalAmount))
	}
}
