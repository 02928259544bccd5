package allocation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// QuantityEntry is the raw content of a line's quantity field together with
// its parsed value. The raw text is kept so an invalid entry can be corrected.
type QuantityEntry struct {
	raw     string
	value   int64
	numeric bool
}

// ParseQuantity interprets user input. Anything that is not a whole number is
// kept as non-numeric input rather than rejected.
func ParseQuantity(input string) QuantityEntry {
	raw := strings.TrimSpace(input)
	value, err := strconv.ParseInt(raw, 10, 64)
	return QuantityEntry{
		raw:     raw,
		value:   value,
		numeric: err == nil,
	}
}

// QuantityOf builds an entry from an already numeric quantity
func QuantityOf(q entities.Quantity) QuantityEntry {
	return QuantityEntry{
		raw:     strconv.FormatInt(int64(q), 10),
		value:   int64(q),
		numeric: true,
	}
}

// Raw returns the text as entered
func (e QuantityEntry) Raw() string {
	return e.raw
}

// Present reports whether anything was entered
func (e QuantityEntry) Present() bool {
	return e.raw != ""
}

// Numeric reports whether the entry parsed as a whole number
func (e QuantityEntry) Numeric() bool {
	return e.numeric
}

// Value returns the quantity if the entry is a positive whole number
func (e QuantityEntry) Value() (entities.Quantity, bool) {
	if !e.numeric || e.value <= 0 {
		return 0, false
	}
	return entities.Quantity(e.value), true
}

// Bound is the inclusive range a line's quantity must fall within
type Bound struct {
	Min    entities.Quantity
	Max    entities.Quantity
	Capped bool
}

// DefaultBound applies to lines without a product
var DefaultBound = Bound{Min: 1}

// StockBound is the range allowed once a product with the given stock is picked
func StockBound(stock entities.Quantity) Bound {
	return Bound{Min: 1, Max: stock, Capped: true}
}

// Contains reports whether q lies within the bound
func (b Bound) Contains(q entities.Quantity) bool {
	if q < b.Min {
		return false
	}
	return !b.Capped || q <= b.Max
}

func (b Bound) String() string {
	if !b.Capped {
		return fmt.Sprintf("[%d, ∞)", b.Min)
	}
	return fmt.Sprintf("[%d, %d]", b.Min, b.Max)
}
