package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// LineView is the display state of one line
type LineView struct {
	Position    int
	ID          LineID
	ProductID   entities.ProductID
	ProductName string
	Selected    bool
	Price       Amount
	Stock       Amount
	Quantity    string
	Bound       Bound
	Total       Amount
	Issues      []IssueReason
}

// Valid reports whether the line can be submitted as is
func (v LineView) Valid() bool {
	return len(v.Issues) == 0
}

func (a *Allocator) view(position int, l *line) LineView {
	view := LineView{
		Position: position,
		ID:       l.id,
		Quantity: l.quantity.Raw(),
		Bound:    l.bound,
		Price:    Unresolved,
		Stock:    Unresolved,
		Total:    Unresolved,
		Issues:   lineIssues(l),
	}
	if !l.selected {
		return view
	}

	candidate, err := a.pool.Get(l.productID)
	if err != nil {
		return view
	}
	view.ProductID = candidate.ID
	view.ProductName = candidate.Name
	view.Selected = true
	view.Price = Resolved(candidate.Price)
	view.Stock = Resolved(decimal.NewFromInt(int64(candidate.Stock)))
	if q, ok := l.quantity.Value(); ok && l.bound.Contains(q) {
		view.Total = Total(candidate.Price, l.quantity)
	}
	return view
}

func lineIssues(l *line) []IssueReason {
	var issues []IssueReason
	if !l.selected {
		issues = append(issues, MissingProduct)
	}
	switch {
	case !l.quantity.Present():
		issues = append(issues, MissingQuantity)
	case !l.quantity.Numeric():
		issues = append(issues, QuantityNotNumeric)
	default:
		q, ok := l.quantity.Value()
		if !ok || !l.bound.Contains(q) {
			issues = append(issues, QuantityOutOfRange)
		}
	}
	return issues
}
