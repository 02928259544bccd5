package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/orderdesk/pkg/application/dto"
	"github.com/vsinha/orderdesk/pkg/application/services/allocation"
	"github.com/vsinha/orderdesk/pkg/domain/entities"
	"github.com/vsinha/orderdesk/pkg/domain/repositories"
	"github.com/vsinha/orderdesk/pkg/infrastructure/events"
)

var (
	// ErrSubmissionInFlight rejects changes while a submission awaits its outcome
	ErrSubmissionInFlight = errors.New("order submission in progress")
	// ErrSubmissionFailed wraps every error reported by the order sink
	ErrSubmissionFailed = errors.New("order submission failed")
	// ErrDeclined is returned when the user answers no to a confirmation
	ErrDeclined = errors.New("declined by user")
)

// OrderCreatedMessage is shown once the sink accepts an order
const OrderCreatedMessage = "Product order was successfully created!"

// Confirmation is a yes/no question put to the user before a destructive step
type Confirmation struct {
	Title   string
	Message string
	Action  string
}

var (
	CreateOrderConfirmation = Confirmation{
		Title:   "Create order",
		Message: "Create current order?",
		Action:  "Create",
	}
	CancelOrderConfirmation = Confirmation{
		Title:   "Cancel order",
		Message: "Confirm cancelation of current order?",
		Action:  "Confirm",
	}
)

// Prompt asks the user to confirm an action
type Prompt interface {
	Confirm(ctx context.Context, question Confirmation) (bool, error)
}

// Notifier reports outcomes back to the user
type Notifier interface {
	Success(message string)
	Error(message string)
}

type silentNotifier struct{}

func (silentNotifier) Success(string) {}
func (silentNotifier) Error(string)   {}

// ComposerConfig holds the optional collaborators of an OrderComposer
type ComposerConfig struct {
	// Journal receives one event per accepted change; nil disables it
	Journal events.EventStore
	// Logger defaults to a no-op logger
	Logger *zap.Logger
	// StreamID names the journal stream; a random one is generated when empty
	StreamID string
}

// OrderComposer drives an Allocator on behalf of a user interface. It loads
// the pool from the catalog, records every accepted change and runs the
// create and cancel flows against the order sink.
type OrderComposer struct {
	allocator *allocation.Allocator
	catalog   repositories.CatalogRepository
	orders    repositories.OrderRepository
	prompt    Prompt
	notifier  Notifier
	journal   events.EventStore
	logger    *zap.Logger
	streamID  string

	mu         sync.Mutex
	submitting bool
}

// NewOrderComposer creates a composer with an empty, unloaded allocator
func NewOrderComposer(
	catalog repositories.CatalogRepository,
	orders repositories.OrderRepository,
	prompt Prompt,
	notifier Notifier,
	config ComposerConfig,
) *OrderComposer {
	if notifier == nil {
		notifier = silentNotifier{}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	streamID := config.StreamID
	if streamID == "" {
		streamID = "order-" + uuid.NewString()
	}
	return &OrderComposer{
		allocator: allocation.NewAllocator(),
		catalog:   catalog,
		orders:    orders,
		prompt:    prompt,
		notifier:  notifier,
		journal:   config.Journal,
		logger:    logger.With(zap.String("stream_id", streamID)),
		streamID:  streamID,
	}
}

// StreamID returns the journal stream this composer writes to
func (c *OrderComposer) StreamID() string {
	return c.streamID
}

// Initialize loads the pool with the catalog's available products
func (c *OrderComposer) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmissionInFlight
	}
	count, err := c.loadPool(ctx)
	if err != nil {
		c.logger.Error("catalog load failed", zap.Error(err))
		return err
	}
	c.logger.Debug("catalog loaded", zap.Int("products", count))
	c.record(events.CatalogLoadedEvent, events.CatalogLoaded{Products: count})
	return nil
}

// AddLine appends an empty line and returns its position
func (c *OrderComposer) AddLine() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return 0, ErrSubmissionInFlight
	}
	position := c.allocator.AddLine()
	id := c.lineID(position)
	c.logger.Debug("line added", zap.Int("position", position), zap.String("line_id", id))
	c.record(events.LineAddedEvent, events.LineAdded{Position: position, LineID: id})
	return position, nil
}

// RemoveLine deletes the line at position and frees its product
func (c *OrderComposer) RemoveLine(position int) error {
	return c.mutate("line removed", position, func(id string) (string, any, error) {
		if err := c.allocator.RemoveLine(position); err != nil {
			return "", nil, err
		}
		return events.LineRemovedEvent, events.LineRemoved{Position: position, LineID: id}, nil
	})
}

// SelectProduct assigns productID to the line at position
func (c *OrderComposer) SelectProduct(position int, productID entities.ProductID) error {
	return c.mutate("product selected", position, func(id string) (string, any, error) {
		if err := c.allocator.SelectProduct(position, productID); err != nil {
			return "", nil, err
		}
		return events.ProductSelectedEvent, events.ProductSelected{
			Position:  position,
			LineID:    id,
			ProductID: productID,
		}, nil
	}, zap.Int64("product_id", int64(productID)))
}

// DeselectProduct clears the product of the line at position
func (c *OrderComposer) DeselectProduct(position int) error {
	return c.mutate("product deselected", position, func(id string) (string, any, error) {
		if err := c.allocator.DeselectProduct(position); err != nil {
			return "", nil, err
		}
		return events.ProductDeselectedEvent, events.ProductDeselected{Position: position, LineID: id}, nil
	})
}

// SetQuantity records raw quantity input for the line at position
func (c *OrderComposer) SetQuantity(position int, input string) error {
	return c.mutate("quantity changed", position, func(id string) (string, any, error) {
		if err := c.allocator.SetQuantity(position, input); err != nil {
			return "", nil, err
		}
		return events.QuantityChangedEvent, events.QuantityChanged{
			Position: position,
			LineID:   id,
			Input:    input,
		}, nil
	}, zap.String("input", input))
}

// RemainingChoices returns the products the line at position may still pick
func (c *OrderComposer) RemainingChoices(position int) ([]entities.ProductCandidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	choices, err := c.allocator.RemainingChoices(position)
	if err != nil {
		return nil, err
	}
	return slices.Collect(choices), nil
}

// Products returns the loaded pool in load order
func (c *OrderComposer) Products() []entities.ProductCandidate {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Collect(c.allocator.Products())
}

// ListCatalog lists catalog products matching the stock condition
func (c *OrderComposer) ListCatalog(condition entities.StockCondition) ([]*entities.ProductCandidate, error) {
	return c.catalog.ListProducts(condition)
}

// LineView returns the display state of the line at position
func (c *OrderComposer) LineView(position int) (allocation.LineView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocator.LineView(position)
}

// Lines returns the display state of every line
func (c *OrderComposer) Lines() []allocation.LineView {
	c.mu.Lock()
	defer c.mu.Unlock()

	views := make([]allocation.LineView, 0, c.allocator.Len())
	for _, view := range c.allocator.Lines() {
		views = append(views, view)
	}
	return views
}

// OrderTotal returns the sum of line totals or the placeholder
func (c *OrderComposer) OrderTotal() allocation.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocator.OrderTotal()
}

// BuildPayload maps the current lines to the submission payload
func (c *OrderComposer) BuildPayload() (*dto.OrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocator.BuildPayload()
}

// Submit runs the create flow. Incomplete orders fail with a
// *allocation.ValidationError before the user is asked anything. A failed or
// declined submission leaves the composition untouched; an accepted one
// clears it and refreshes the pool from the catalog.
func (c *OrderComposer) Submit(ctx context.Context) (*entities.OrderConfirmation, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	payload, err := c.allocator.BuildPayload()
	if err != nil {
		c.mu.Unlock()
		c.logger.Info("order incomplete", zap.Error(err))
		return nil, err
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	confirmed, err := c.prompt.Confirm(ctx, CreateOrderConfirmation)
	if err != nil {
		return nil, fmt.Errorf("confirm order: %w", err)
	}
	if !confirmed {
		c.logger.Debug("order creation declined")
		return nil, ErrDeclined
	}

	confirmation, err := c.orders.Submit(ctx, payload.OrderLines)
	if err != nil {
		c.logger.Warn("order rejected", zap.Int("lines", len(payload.OrderLines)), zap.Error(err))
		c.notifier.Error(err.Error())
		c.record(events.OrderRejectedEvent, events.OrderRejected{Reason: err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	c.logger.Info("order created",
		zap.String("order_id", confirmation.ID),
		zap.Stringer("total", confirmation.Total))
	c.record(events.OrderSubmittedEvent, events.OrderSubmitted{Confirmation: *confirmation})
	c.notifier.Success(OrderCreatedMessage)

	c.mu.Lock()
	c.allocator.Reset()
	if _, err := c.loadPool(ctx); err != nil {
		c.logger.Warn("catalog refresh failed", zap.Error(err))
	}
	c.mu.Unlock()

	return confirmation, nil
}

// Cancel runs the cancel flow and reports whether the composition was discarded
func (c *OrderComposer) Cancel(ctx context.Context) (bool, error) {
	c.mu.Lock()
	busy := c.submitting
	c.mu.Unlock()
	if busy {
		return false, ErrSubmissionInFlight
	}

	confirmed, err := c.prompt.Confirm(ctx, CancelOrderConfirmation)
	if err != nil {
		return false, fmt.Errorf("confirm cancel: %w", err)
	}
	if !confirmed {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return false, ErrSubmissionInFlight
	}
	discarded := c.allocator.Len()
	c.allocator.Reset()
	c.logger.Debug("order cancelled", zap.Int("discarded_lines", discarded))
	c.record(events.OrderCancelledEvent, events.OrderCancelled{DiscardedLines: discarded})
	return true, nil
}

// mutate applies a line-level change under the lock. apply receives the
// line's id and returns the journal event for the accepted change.
func (c *OrderComposer) mutate(
	action string,
	position int,
	apply func(lineID string) (string, any, error),
	fields ...zap.Field,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmissionInFlight
	}
	id := c.lineID(position)
	eventType, data, err := apply(id)
	fields = append(fields, zap.Int("position", position))
	if err != nil {
		c.logger.Error(action+" rejected", append(fields, zap.Error(err))...)
		return err
	}
	c.logger.Debug(action, append(fields, zap.String("line_id", id))...)
	c.record(eventType, data)
	return nil
}

func (c *OrderComposer) lineID(position int) string {
	view, err := c.allocator.LineView(position)
	if err != nil {
		return ""
	}
	return view.ID.String()
}

func (c *OrderComposer) loadPool(ctx context.Context) (int, error) {
	products, err := c.catalog.FetchAvailableProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch available products: %w", err)
	}
	candidates := make([]entities.ProductCandidate, 0, len(products))
	for _, product := range products {
		candidates = append(candidates, *product)
	}
	if err := c.allocator.Initialize(candidates); err != nil {
		return 0, fmt.Errorf("load product pool: %w", err)
	}
	return len(candidates), nil
}

func (c *OrderComposer) record(eventType string, data any) {
	if c.journal == nil {
		return
	}
	if err := c.journal.AppendEvent(c.streamID, events.NewEvent(eventType, c.streamID, data)); err != nil {
		c.logger.Warn("journal append failed", zap.String("event_type", eventType), zap.Error(err))
	}
}
