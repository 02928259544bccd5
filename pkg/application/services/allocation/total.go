package allocation

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Placeholder is displayed for any value that cannot be resolved yet
const Placeholder = "-"

// Amount is a display value that is either a number or unresolved
type Amount struct {
	value    decimal.Decimal
	resolved bool
}

// Unresolved is the placeholder amount
var Unresolved = Amount{}

// Resolved wraps a known value
func Resolved(value decimal.Decimal) Amount {
	return Amount{value: value, resolved: true}
}

// Value returns the number and whether it is resolved
func (a Amount) Value() (decimal.Decimal, bool) {
	return a.value, a.resolved
}

// IsResolved reports whether the amount holds a number
func (a Amount) IsResolved() bool {
	return a.resolved
}

// Equal compares two amounts; unresolved amounts are equal to each other
func (a Amount) Equal(other Amount) bool {
	if a.resolved != other.resolved {
		return false
	}
	return !a.resolved || a.value.Equal(other.value)
}

func (a Amount) String() string {
	if !a.resolved {
		return Placeholder
	}
	return a.value.String()
}

// MarshalJSON renders unresolved amounts as the placeholder
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.resolved {
		return json.Marshal(Placeholder)
	}
	return a.value.MarshalJSON()
}

// Total computes price * quantity. Absent or non-positive-integer quantities
// produce the placeholder instead of an error.
func Total(price decimal.Decimal, quantity QuantityEntry) Amount {
	q, ok := quantity.Value()
	if !ok {
		return Unresolved
	}
	return Resolved(price.Mul(decimal.NewFromInt(int64(q))))
}
