package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
	"github.com/vsinha/orderdesk/pkg/domain/repositories"
)

// ErrProductNotFound is returned when an order names a product the catalog does not have
var ErrProductNotFound = errors.New("product not found")

// InvalidOrderLine describes a line whose quantity exceeds current stock
type InvalidOrderLine struct {
	ProductID         entities.ProductID
	Name              string
	RequestedQuantity entities.Quantity
	Stock             entities.Quantity
}

// InsufficientStockError lists every line that could not be served
type InsufficientStockError struct {
	Lines []InvalidOrderLine
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, line := range e.Lines {
		parts[i] = fmt.Sprintf("%s (id %d): requested %d, stock %d",
			line.Name, line.ProductID, line.RequestedQuantity, line.Stock)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// OrderRepository registers orders against an in-memory catalog
type OrderRepository struct {
	mu      sync.RWMutex
	catalog *CatalogRepository
	orders  []entities.OrderConfirmation
	now     func() time.Time
}

// NewOrderRepository creates an order sink that draws stock from catalog
func NewOrderRepository(catalog *CatalogRepository) *OrderRepository {
	return &OrderRepository{
		catalog: catalog,
		orders:  []entities.OrderConfirmation{},
		now:     time.Now,
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// Submit re-checks every line against current stock, removes the ordered
// quantities and records the order. Either all lines are served or none.
func (r *OrderRepository) Submit(ctx context.Context, lines []entities.OrderLineRequest) (*entities.OrderConfirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must have at least one line")
	}

	seen := make(map[entities.ProductID]bool, len(lines))
	for _, line := range lines {
		if _, err := entities.NewOrderLineRequest(line.ProductID, line.Quantity); err != nil {
			return nil, fmt.Errorf("invalid order line: %w", err)
		}
		if seen[line.ProductID] {
			return nil, fmt.Errorf("product %d appears on more than one line", line.ProductID)
		}
		seen[line.ProductID] = true
	}

	products, err := r.catalog.reserveStock(lines)
	if err != nil {
		return nil, fmt.Errorf("couldn't register product order: %w", err)
	}

	confirmedLines := make([]entities.ConfirmedLine, len(lines))
	for i, line := range lines {
		confirmed, err := entities.NewConfirmedLine(products[i], line.Quantity)
		if err != nil {
			return nil, err
		}
		confirmedLines[i] = *confirmed
	}

	confirmation, err := entities.NewOrderConfirmation(uuid.NewString(), r.now(), confirmedLines)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.orders = append(r.orders, *confirmation)
	r.mu.Unlock()

	return confirmation, nil
}

// GetAllOrders returns every registered order in submission order
func (r *OrderRepository) GetAllOrders() ([]*entities.OrderConfirmation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*entities.OrderConfirmation
	for i := range r.orders {
		order := r.orders[i]
		orders = append(orders, &order)
	}
	return orders, nil
}

// GetOrder returns an order by id
func (r *OrderRepository) GetOrder(id string) (*entities.OrderConfirmation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, fmt.Errorf("order not found: %s", id)
}
