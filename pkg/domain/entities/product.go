package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID represents a unique product identifier
type ProductID int64

// Quantity represents an integer quantity of discrete product units
type Quantity int64

// StockCondition filters catalog listings by stock level
type StockCondition int

const (
	AllProducts StockCondition = iota
	AvailableProducts
	UnavailableProducts
)

// String method for StockCondition enum
func (c StockCondition) String() string {
	switch c {
	case AllProducts:
		return "all"
	case AvailableProducts:
		return "available"
	case UnavailableProducts:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ParseStockCondition converts the wire name of a stock condition
func ParseStockCondition(s string) (StockCondition, error) {
	switch s {
	case "all", "":
		return AllProducts, nil
	case "available":
		return AvailableProducts, nil
	case "unavailable":
		return UnavailableProducts, nil
	default:
		return AllProducts, fmt.Errorf("invalid stock condition: %s", s)
	}
}

// Matches reports whether a product with the given stock satisfies the condition
func (c StockCondition) Matches(stock Quantity) bool {
	switch c {
	case AvailableProducts:
		return stock > 0
	case UnavailableProducts:
		return stock == 0
	default:
		return true
	}
}

// ProductCandidate is a product that may be picked by an order line.
// Price and stock are fixed for the duration of one order composition.
type ProductCandidate struct {
	ID          ProductID
	Name        string
	ProductType string
	Price       decimal.Decimal
	Stock       Quantity
}

// NewProductCandidate creates a validated ProductCandidate
func NewProductCandidate(id ProductID, name, productType string, price decimal.Decimal, stock Quantity) (*ProductCandidate, error) {
	if id <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", id)
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative, got %d", stock)
	}

	return &ProductCandidate{
		ID:          id,
		Name:        name,
		ProductType: productType,
		Price:       price,
		Stock:       stock,
	}, nil
}

// Validate checks a candidate built without the constructor
func (p ProductCandidate) Validate() error {
	_, err := NewProductCandidate(p.ID, p.Name, p.ProductType, p.Price, p.Stock)
	return err
}
