package repositories

import (
	"context"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// OrderRepository registers submitted orders
type OrderRepository interface {
	Submit(ctx context.Context, lines []entities.OrderLineRequest) (*entities.OrderConfirmation, error)
	GetAllOrders() ([]*entities.OrderConfirmation, error)
}
