package events

import (
	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

const (
	LineAddedEvent   = "line.added"
	LineRemovedEvent = "line.removed"

	ProductSelectedEvent   = "product.selected"
	ProductDeselectedEvent = "product.deselected"
	QuantityChangedEvent   = "quantity.changed"

	CatalogLoadedEvent  = "catalog.loaded"
	OrderSubmittedEvent = "order.submitted"
	OrderRejectedEvent  = "order.rejected"
	OrderCancelledEvent = "order.cancelled"
)

// CompositionEventTypes lists every event an order composition may emit
var CompositionEventTypes = []string{
	LineAddedEvent,
	LineRemovedEvent,
	ProductSelectedEvent,
	ProductDeselectedEvent,
	QuantityChangedEvent,
	CatalogLoadedEvent,
	OrderSubmittedEvent,
	OrderRejectedEvent,
	OrderCancelledEvent,
}

type LineAdded struct {
	Position int    `json:"position"`
	LineID   string `json:"line_id"`
}

type LineRemoved struct {
	Position int    `json:"position"`
	LineID   string `json:"line_id"`
}

type ProductSelected struct {
	Position  int                `json:"position"`
	LineID    string             `json:"line_id"`
	ProductID entities.ProductID `json:"product_id"`
}

type ProductDeselected struct {
	Position int    `json:"position"`
	LineID   string `json:"line_id"`
}

type QuantityChanged struct {
	Position int    `json:"position"`
	LineID   string `json:"line_id"`
	Input    string `json:"input"`
}

type CatalogLoaded struct {
	Products int `json:"products"`
}

type OrderSubmitted struct {
	Confirmation entities.OrderConfirmation `json:"confirmation"`
}

type OrderRejected struct {
	Reason string `json:"reason"`
}

type OrderCancelled struct {
	DiscardedLines int `json:"discarded_lines"`
}
