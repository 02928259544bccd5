package allocation

import (
	"github.com/vsinha/orderdesk/pkg/application/dto"
	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// BuildPayload maps the lines to the submission payload. Lines without a
// product or with an unusable quantity are reported, never dropped.
func (a *Allocator) BuildPayload() (*dto.OrderRequest, error) {
	if a.lines.Len() == 0 {
		return nil, &ValidationError{Issues: []LineIssue{{Position: -1, Reason: NoLines}}}
	}

	var issues []LineIssue
	orderLines := make([]entities.OrderLineRequest, 0, a.lines.Len())
	for position, l := range a.lines.all() {
		reasons := lineIssues(l)
		for _, reason := range reasons {
			issues = append(issues, LineIssue{Position: position, LineID: l.id, Reason: reason})
		}
		if len(reasons) > 0 {
			continue
		}
		quantity, _ := l.quantity.Value()
		orderLines = append(orderLines, entities.OrderLineRequest{
			ProductID: l.productID,
			Quantity:  quantity,
		})
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &dto.OrderRequest{OrderLines: orderLines}, nil
}
