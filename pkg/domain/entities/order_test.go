package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderLineRequest_Validation(t *testing.T) {
	validLine, err := NewOrderLineRequest(3, 2)
	if err != nil {
		t.Fatalf("Expected valid line creation to succeed: %v", err)
	}
	if validLine.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", validLine.Quantity)
	}

	testCases := []struct {
		name        string
		productID   ProductID
		quantity    Quantity
		expectError string
	}{
		{"zero product", 0, 2, "product id must be positive, got 0"},
		{"zero quantity", 3, 0, "quantity must be positive, got 0"},
		{"negative quantity", 3, -1, "quantity must be positive, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrderLineRequest(tc.productID, tc.quantity)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestOrderConfirmation_Total(t *testing.T) {
	shield := ProductCandidate{ID: 1, Name: "Shield", Price: decimal.RequireFromString("10.50"), Stock: 5}
	hammer := ProductCandidate{ID: 2, Name: "Hammer", Price: decimal.NewFromInt(20), Stock: 3}

	first, err := NewConfirmedLine(shield, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := NewConfirmedLine(hammer, 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !first.Total.Equal(decimal.NewFromInt(21)) {
		t.Errorf("Expected line total 21, got %s", first.Total)
	}

	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	confirmation, err := NewOrderConfirmation("order-1", createdAt, []ConfirmedLine{*first, *second})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !confirmation.Total.Equal(decimal.NewFromInt(81)) {
		t.Errorf("Expected order total 81, got %s", confirmation.Total)
	}

	if _, err := NewOrderConfirmation("order-2", createdAt, nil); err == nil {
		t.Error("Expected error for order without lines")
	}
	if _, err := NewOrderConfirmation("", createdAt, []ConfirmedLine{*first}); err == nil {
		t.Error("Expected error for empty order id")
	}
	if _, err := NewConfirmedLine(shield, 0); err == nil {
		t.Error("Expected error for zero quantity line")
	}
}
