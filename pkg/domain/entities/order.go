package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line of an order submission
type OrderLineRequest struct {
	ProductID ProductID `json:"productId"`
	Quantity  Quantity  `json:"quantity"`
}

// NewOrderLineRequest creates a validated OrderLineRequest
func NewOrderLineRequest(productID ProductID, quantity Quantity) (*OrderLineRequest, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", productID)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return &OrderLineRequest{
		ProductID: productID,
		Quantity:  quantity,
	}, nil
}

// ConfirmedLine is a registered order line with the product details captured at submission
type ConfirmedLine struct {
	ProductID    ProductID       `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	Quantity     Quantity        `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
}

// NewConfirmedLine captures a product at its current price for the requested quantity
func NewConfirmedLine(product ProductCandidate, quantity Quantity) (*ConfirmedLine, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return &ConfirmedLine{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     quantity,
		Total:        product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// OrderConfirmation is returned by the order sink once an order is registered
type OrderConfirmation struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Lines     []ConfirmedLine `json:"productOrderLines"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderConfirmation creates a confirmation whose total is the sum of its line totals
func NewOrderConfirmation(id string, createdAt time.Time, lines []ConfirmedLine) (*OrderConfirmation, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must have at least one line")
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total)
	}

	return &OrderConfirmation{
		ID:        id,
		CreatedAt: createdAt,
		Lines:     lines,
		Total:     total,
	}, nil
}
