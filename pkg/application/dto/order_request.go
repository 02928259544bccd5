package dto

import "github.com/vsinha/orderdesk/pkg/domain/entities"

// OrderRequest is the payload handed to the order submission sink
type OrderRequest struct {
	OrderLines []entities.OrderLineRequest `json:"orderLines"`
}

// ProductIDs returns the product of every line in order
func (r *OrderRequest) ProductIDs() []entities.ProductID {
	ids := make([]entities.ProductID, len(r.OrderLines))
	for i, line := range r.OrderLines {
		ids[i] = line.ProductID
	}
	return ids
}
