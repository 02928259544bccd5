package allocation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// Ownership records which line currently holds which product.
// A product appears at most once; it is present iff some line has selected it.
type Ownership map[entities.ProductID]LineID

// NewOwnership creates a new empty ownership map
func NewOwnership() Ownership {
	return make(Ownership)
}

// Owner returns the line holding a product
func (o Ownership) Owner(productID entities.ProductID) (LineID, bool) {
	line, exists := o[productID]
	return line, exists
}

// Claim records productID as held by line
func (o Ownership) Claim(productID entities.ProductID, line LineID) error {
	if owner, exists := o[productID]; exists && owner != line {
		return fmt.Errorf("%w: product %d held by line %s", ErrAlreadyOwned, productID, owner)
	}
	o[productID] = line
	return nil
}

// Release drops the entry for productID
func (o Ownership) Release(productID entities.ProductID) {
	delete(o, productID)
}

// HeldBy returns the product held by line, if any
func (o Ownership) HeldBy(line LineID) (entities.ProductID, bool) {
	for productID, owner := range o {
		if owner == line {
			return productID, true
		}
	}
	return 0, false
}

// Has checks if a product is held by any line
func (o Ownership) Has(productID entities.ProductID) bool {
	_, exists := o[productID]
	return exists
}

// Clear removes all entries
func (o Ownership) Clear() {
	for key := range o {
		delete(o, key)
	}
}

// Size returns the number of held products
func (o Ownership) Size() int {
	return len(o)
}

// Products returns the held product ids in ascending order
func (o Ownership) Products() []entities.ProductID {
	products := make([]entities.ProductID, 0, len(o))
	for productID := range o {
		products = append(products, productID)
	}
	sort.Slice(products, func(i, j int) bool { return products[i] < products[j] })
	return products
}

// Clone returns an independent copy
func (o Ownership) Clone() Ownership {
	clone := make(Ownership, len(o))
	for productID, line := range o {
		clone[productID] = line
	}
	return clone
}

// String returns a string representation of the ownership map for debugging
func (o Ownership) String() string {
	if len(o) == 0 {
		return "Ownership{empty}"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ownership{%d entries:\n", len(o))
	for _, productID := range o.Products() {
		fmt.Fprintf(&b, "  product %d -> line %s\n", productID, o[productID])
	}
	b.WriteString("}")
	return b.String()
}
