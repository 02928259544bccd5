package repositories

import (
	"context"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// CatalogRepository provides access to the product catalog
type CatalogRepository interface {
	// FetchAvailableProducts returns products with stock on hand, in catalog order.
	FetchAvailableProducts(ctx context.Context) ([]*entities.ProductCandidate, error)
	GetProduct(id entities.ProductID) (*entities.ProductCandidate, error)
	ListProducts(condition entities.StockCondition) ([]*entities.ProductCandidate, error)
	LoadProducts(products []*entities.ProductCandidate) error
}
