package allocation

import (
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// LineID is the stable identity of an order line. Positions shift when lines
// are removed; ids do not.
type LineID uuid.UUID

func (id LineID) String() string {
	return uuid.UUID(id).String()
}

// NewLineID returns a fresh random line id
func NewLineID() LineID {
	return LineID(uuid.New())
}

// line is one arena record
type line struct {
	id        LineID
	productID entities.ProductID
	selected  bool
	quantity  QuantityEntry
	bound     Bound
}

func newLine(id LineID) *line {
	return &line{id: id, bound: DefaultBound}
}

// LineCollection stores order lines by id and keeps their display order separately
type LineCollection struct {
	records map[LineID]*line
	order   []LineID
	newID   func() LineID
}

// NewLineCollection creates an empty collection
func NewLineCollection() *LineCollection {
	return &LineCollection{
		records: make(map[LineID]*line),
		newID:   NewLineID,
	}
}

// Add appends an empty line and returns its id
func (c *LineCollection) Add() LineID {
	id := c.newID()
	c.records[id] = newLine(id)
	c.order = append(c.order, id)
	return id
}

// Remove drops the line at position; later lines move up by one
func (c *LineCollection) Remove(position int) error {
	id, err := c.IDAt(position)
	if err != nil {
		return err
	}
	c.order = slices.Delete(c.order, position, position+1)
	delete(c.records, id)
	return nil
}

// IDAt resolves a display position to a line id
func (c *LineCollection) IDAt(position int) (LineID, error) {
	if position < 0 || position >= len(c.order) {
		return LineID{}, fmt.Errorf("%w: position %d, %d line(s)", ErrOutOfRange, position, len(c.order))
	}
	return c.order[position], nil
}

// PositionOf returns the current display position of a line
func (c *LineCollection) PositionOf(id LineID) (int, bool) {
	i := slices.Index(c.order, id)
	return i, i >= 0
}

func (c *LineCollection) at(position int) (*line, error) {
	id, err := c.IDAt(position)
	if err != nil {
		return nil, err
	}
	return c.records[id], nil
}

// Len returns the number of lines
func (c *LineCollection) Len() int {
	return len(c.order)
}

// Clear removes every line
func (c *LineCollection) Clear() {
	c.records = make(map[LineID]*line)
	c.order = nil
}

func (c *LineCollection) all() iter.Seq2[int, *line] {
	return func(yield func(int, *line) bool) {
		for position, id := range c.order {
			if !yield(position, c.records[id]) {
				return
			}
		}
	}
}
