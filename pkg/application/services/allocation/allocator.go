package allocation

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// Allocator composes an order from lines that each claim at most one product
// from a shared pool. No two lines ever hold the same product.
//
// Every method runs to completion synchronously; callers must not invoke it
// from more than one goroutine at a time.
type Allocator struct {
	owners Ownership
	pool   *Pool
	lines  *LineCollection
}

// NewAllocator creates an allocator with an unloaded pool and no lines
func NewAllocator() *Allocator {
	owners := NewOwnership()
	return &Allocator{
		owners: owners,
		pool:   NewPool(owners),
		lines:  NewLineCollection(),
	}
}

// Initialize loads the product pool
func (a *Allocator) Initialize(candidates []entities.ProductCandidate) error {
	return a.pool.Load(candidates)
}

// Loaded reports whether the pool has been loaded
func (a *Allocator) Loaded() bool {
	return a.pool.Loaded()
}

// Products yields the whole pool in load order
func (a *Allocator) Products() iter.Seq[entities.ProductCandidate] {
	return a.pool.All()
}

// AddLine appends an empty line and returns its position
func (a *Allocator) AddLine() int {
	a.lines.Add()
	return a.lines.Len() - 1
}

// RemoveLine deletes the line at position, releasing its product first
func (a *Allocator) RemoveLine(position int) error {
	l, err := a.lines.at(position)
	if err != nil {
		return err
	}
	a.release(l)
	return a.lines.Remove(position)
}

// Len returns the number of lines
func (a *Allocator) Len() int {
	return a.lines.Len()
}

// Reset discards every line and all ownership; the pool is kept
func (a *Allocator) Reset() {
	a.owners.Clear()
	a.lines.Clear()
}

// SelectProduct assigns productID to the line at position, releasing whatever
// the line held before. The request is checked in full before anything changes.
func (a *Allocator) SelectProduct(position int, productID entities.ProductID) error {
	if !a.pool.Loaded() {
		return fmt.Errorf("select product %d: %w", productID, ErrNotLoaded)
	}
	l, err := a.lines.at(position)
	if err != nil {
		return err
	}
	candidate, err := a.pool.Get(productID)
	if err != nil {
		return err
	}
	if owner, held := a.owners.Owner(productID); held && owner != l.id {
		ownerPosition, _ := a.lines.PositionOf(owner)
		return fmt.Errorf("%w: product %d held by line %d", ErrAlreadyOwned, productID, ownerPosition)
	}

	a.release(l)
	if err := a.owners.Claim(productID, l.id); err != nil {
		return err
	}
	l.productID = productID
	l.selected = true
	l.bound = StockBound(candidate.Stock)
	return nil
}

// DeselectProduct clears the line's product. The quantity entry is kept.
func (a *Allocator) DeselectProduct(position int) error {
	l, err := a.lines.at(position)
	if err != nil {
		return err
	}
	a.release(l)
	return nil
}

// SetQuantity records the raw quantity input for the line at position.
// Invalid input is stored and surfaces through the line's view.
func (a *Allocator) SetQuantity(position int, input string) error {
	l, err := a.lines.at(position)
	if err != nil {
		return err
	}
	l.quantity = ParseQuantity(input)
	return nil
}

// RemainingChoices yields the products the line at position may pick, in pool order
func (a *Allocator) RemainingChoices(position int) (iter.Seq[entities.ProductCandidate], error) {
	if !a.pool.Loaded() {
		return nil, ErrNotLoaded
	}
	id, err := a.lines.IDAt(position)
	if err != nil {
		return nil, err
	}
	return a.pool.RemainingFor(id), nil
}

// Owner returns the position of the line holding productID
func (a *Allocator) Owner(productID entities.ProductID) (int, bool) {
	id, held := a.owners.Owner(productID)
	if !held {
		return 0, false
	}
	return a.lines.PositionOf(id)
}

// Ownership returns a copy of the current ownership map
func (a *Allocator) Ownership() Ownership {
	return a.owners.Clone()
}

// LineView returns the display state of the line at position
func (a *Allocator) LineView(position int) (LineView, error) {
	l, err := a.lines.at(position)
	if err != nil {
		return LineView{}, err
	}
	return a.view(position, l), nil
}

// Lines yields the view of every line in display order, computed at read time
func (a *Allocator) Lines() iter.Seq2[int, LineView] {
	return func(yield func(int, LineView) bool) {
		for position, l := range a.lines.all() {
			if !yield(position, a.view(position, l)) {
				return
			}
		}
	}
}

// OrderTotal sums the line totals. It is unresolved when there are no lines
// or any line total is unresolved.
func (a *Allocator) OrderTotal() Amount {
	if a.lines.Len() == 0 {
		return Unresolved
	}
	sum := decimal.Zero
	for _, view := range a.Lines() {
		total, ok := view.Total.Value()
		if !ok {
			return Unresolved
		}
		sum = sum.Add(total)
	}
	return Resolved(sum)
}

// release drops the line's selection and quantity bound
func (a *Allocator) release(l *line) {
	if !l.selected {
		return
	}
	if owner, held := a.owners.Owner(l.productID); held && owner == l.id {
		a.owners.Release(l.productID)
	}
	l.productID = 0
	l.selected = false
	l.bound = DefaultBound
}
