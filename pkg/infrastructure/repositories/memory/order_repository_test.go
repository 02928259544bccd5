package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

func TestOrderRepository_Submit(t *testing.T) {
	catalog := newTestCatalog(t)
	repo := NewOrderRepository(catalog)
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return createdAt }

	confirmation, err := repo.Submit(context.Background(), []entities.OrderLineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("Failed to submit order: %v", err)
	}

	if confirmation.ID == "" {
		t.Error("Expected order id to be assigned")
	}
	if !confirmation.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected created at %v, got %v", createdAt, confirmation.CreatedAt)
	}
	if len(confirmation.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(confirmation.Lines))
	}
	if confirmation.Lines[0].ProductName != "Shield" {
		t.Errorf("Expected first line Shield, got %s", confirmation.Lines[0].ProductName)
	}
	if !confirmation.Total.Equal(decimal.NewFromInt(80)) {
		t.Errorf("Expected total 80, got %s", confirmation.Total)
	}

	shield, _ := catalog.GetProduct(1)
	if shield.Stock != 3 {
		t.Errorf("Expected shield stock 3 after order, got %d", shield.Stock)
	}
	hammer, _ := catalog.GetProduct(3)
	if hammer.Stock != 0 {
		t.Errorf("Expected hammer stock 0 after order, got %d", hammer.Stock)
	}

	orders, _ := repo.GetAllOrders()
	if len(orders) != 1 {
		t.Fatalf("Expected 1 stored order, got %d", len(orders))
	}
	stored, err := repo.GetOrder(confirmation.ID)
	if err != nil {
		t.Fatalf("Failed to get stored order: %v", err)
	}
	if !stored.Total.Equal(confirmation.Total) {
		t.Errorf("Expected stored total %s, got %s", confirmation.Total, stored.Total)
	}
}

func TestOrderRepository_InsufficientStockIsAllOrNothing(t *testing.T) {
	catalog := newTestCatalog(t)
	repo := NewOrderRepository(catalog)

	_, err := repo.Submit(context.Background(), []entities.OrderLineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 4},
		{ProductID: 2, Quantity: 1},
	})

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected InsufficientStockError, got %v", err)
	}
	if len(stockErr.Lines) != 2 {
		t.Fatalf("Expected 2 invalid lines, got %d", len(stockErr.Lines))
	}
	if stockErr.Lines[0].ProductID != 3 || stockErr.Lines[0].Stock != 3 || stockErr.Lines[0].RequestedQuantity != 4 {
		t.Errorf("Unexpected first invalid line: %+v", stockErr.Lines[0])
	}
	if stockErr.Lines[1].ProductID != 2 {
		t.Errorf("Expected second invalid line for product 2, got %d", stockErr.Lines[1].ProductID)
	}

	shield, _ := catalog.GetProduct(1)
	if shield.Stock != 5 {
		t.Errorf("Expected shield stock untouched at 5, got %d", shield.Stock)
	}
	orders, _ := repo.GetAllOrders()
	if len(orders) != 0 {
		t.Errorf("Expected no stored orders, got %d", len(orders))
	}
}

func TestOrderRepository_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name  string
		lines []entities.OrderLineRequest
	}{
		{"no lines", nil},
		{"zero quantity", []entities.OrderLineRequest{{ProductID: 1, Quantity: 0}}},
		{"duplicate product", []entities.OrderLineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 1}}},
		{"unknown product", []entities.OrderLineRequest{{ProductID: 77, Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewOrderRepository(newTestCatalog(t))
			if _, err := repo.Submit(context.Background(), tt.lines); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}

	repo := NewOrderRepository(newTestCatalog(t))
	_, err := repo.Submit(context.Background(), []entities.OrderLineRequest{{ProductID: 77, Quantity: 1}})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}
