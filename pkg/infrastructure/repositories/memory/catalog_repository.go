package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
	"github.com/vsinha/orderdesk/pkg/domain/repositories"
)

// CatalogRepository provides in-memory product storage
type CatalogRepository struct {
	mu          sync.RWMutex
	products    []entities.ProductCandidate
	productsMap map[entities.ProductID]int
}

// NewCatalogRepository creates a new in-memory catalog
func NewCatalogRepository(expectedProducts int) *CatalogRepository {
	return &CatalogRepository{
		products:    make([]entities.ProductCandidate, 0, expectedProducts),
		productsMap: make(map[entities.ProductID]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadProducts loads products into the catalog
func (r *CatalogRepository) LoadProducts(products []*entities.ProductCandidate) error {
	for _, product := range products {
		if err := r.AddProduct(*product); err != nil {
			return err
		}
	}
	return nil
}

// AddProduct adds a product to the catalog
func (r *CatalogRepository) AddProduct(product entities.ProductCandidate) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("invalid product %d: %w", product.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.productsMap[product.ID]; exists {
		return fmt.Errorf("product already exists: %d", product.ID)
	}
	r.productsMap[product.ID] = len(r.products)
	r.products = append(r.products, product)
	return nil
}

// GetProduct returns a copy of the product with the given id
func (r *CatalogRepository) GetProduct(id entities.ProductID) (*entities.ProductCandidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.productsMap[id]
	if !exists {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	product := r.products[index]
	return &product, nil
}

// ListProducts returns copies of the products matching the stock condition, in catalog order
func (r *CatalogRepository) ListProducts(condition entities.StockCondition) ([]*entities.ProductCandidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*entities.ProductCandidate
	for i := range r.products {
		if condition.Matches(r.products[i].Stock) {
			product := r.products[i]
			products = append(products, &product)
		}
	}
	return products, nil
}

// FetchAvailableProducts returns the products that have stock on hand
func (r *CatalogRepository) FetchAvailableProducts(ctx context.Context) ([]*entities.ProductCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.ListProducts(entities.AvailableProducts)
}

// reserveStock checks and removes quantities for a batch of lines under a
// single lock. Nothing is removed unless every line fits.
func (r *CatalogRepository) reserveStock(lines []entities.OrderLineRequest) ([]entities.ProductCandidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]entities.ProductCandidate, len(lines))
	var invalid []InvalidOrderLine
	for i, line := range lines {
		index, exists := r.productsMap[line.ProductID]
		if !exists {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
		}
		product := r.products[index]
		if line.Quantity > product.Stock {
			invalid = append(invalid, InvalidOrderLine{
				ProductID:         product.ID,
				Name:              product.Name,
				RequestedQuantity: line.Quantity,
				Stock:             product.Stock,
			})
		}
		products[i] = product
	}
	if len(invalid) > 0 {
		return nil, &InsufficientStockError{Lines: invalid}
	}

	for _, line := range lines {
		r.products[r.productsMap[line.ProductID]].Stock -= line.Quantity
	}
	return products, nil
}
