package validation

import "testing"

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		Email: "buyer@example.com",
		Items: []Item{
			{ProductID: "p1", Name: "Candy Box", Quantity: 2, Price: 1500},
			{ProductID: "p2", Name: "Gift Wrap", Quantity: 1, Price: 500},
		},
		ShippingFee: 1000,
		Tax:         262.5, // 7.5% of 3500
		TotalAmount: 4762.5,
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCreateOrderRequest_TotalMismatch(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		Email: "buyer@example.com",
		Items: []Item{
			{ProductID: "p1", Name: "Candy Box", Quantity: 1, Price: 1000},
		},
		TotalAmount: 999.99, // mismatch
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for total mismatch, got nil")
	}
}

func TestCreateOrderRequest_DiscountCountsAgainstTotal(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		Email: "buyer@example.com",
		Items: []Item{
			{ProductID: "p1", Name: "Candy Box", Quantity: 1, Price: 2000},
		},
		Discount:    500,
		TotalAmount: 1500,
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCreateOrderRequest_MissingFields(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		// Email missing
		Items:       []Item{},
		TotalAmount: 0,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
}
