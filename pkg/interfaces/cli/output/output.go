package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vsinha/orderdesk/pkg/application/services/allocation"
	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// Formats lists the supported output formats
var Formats = []string{"text", "json"}

// Printer renders console state in the configured format
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a printer for the given format
func NewPrinter(w io.Writer, format string) (*Printer, error) {
	switch format {
	case "text", "json":
		return &Printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type lineJSON struct {
	Position    int                `json:"position"`
	LineID      string             `json:"lineId"`
	ProductID   entities.ProductID `json:"productId,omitempty"`
	ProductName string             `json:"productName,omitempty"`
	Price       allocation.Amount  `json:"price"`
	Stock       allocation.Amount  `json:"stock"`
	Quantity    string             `json:"quantity"`
	Total       allocation.Amount  `json:"total"`
	Issues      []string           `json:"issues,omitempty"`
}

type orderJSON struct {
	Lines []lineJSON        `json:"lines"`
	Total allocation.Amount `json:"total"`
}

type productJSON struct {
	ID          entities.ProductID `json:"id"`
	Name        string             `json:"name"`
	ProductType string             `json:"productType"`
	Price       string             `json:"price"`
	Stock       entities.Quantity  `json:"stock"`
}

// Lines prints every line and the order total
func (p *Printer) Lines(views []allocation.LineView, total allocation.Amount) error {
	if p.format == "json" {
		order := orderJSON{Lines: make([]lineJSON, len(views)), Total: total}
		for i, view := range views {
			order.Lines[i] = toLineJSON(view)
		}
		return p.json(order)
	}

	if len(views) == 0 {
		fmt.Fprintf(p.w, "🛒 No order lines yet. Use 'add' to start.\n")
		return nil
	}

	fmt.Fprintf(p.w, "🛒 Order Lines\n")
	fmt.Fprintf(p.w, "%-4s %-20s %-10s %-8s %-10s %-12s %s\n",
		"#", "Product", "Price", "Stock", "Quantity", "Total", "Issues")
	fmt.Fprintf(p.w, "%-4s %-20s %-10s %-8s %-10s %-12s %s\n",
		"----", "--------------------", "----------", "--------", "----------", "------------", "------")
	for _, view := range views {
		name := view.ProductName
		if !view.Selected {
			name = allocation.Placeholder
		}
		quantity := view.Quantity
		if quantity == "" {
			quantity = allocation.Placeholder
		}
		fmt.Fprintf(p.w, "%-4d %-20s %-10s %-8s %-10s %-12s %s\n",
			view.Position,
			name,
			view.Price,
			view.Stock,
			quantity,
			view.Total,
			issueText(view.Issues))
	}
	fmt.Fprintf(p.w, "Order total: %s\n", total)
	return nil
}

// Choices prints the products a line may still pick
func (p *Printer) Choices(position int, choices []entities.ProductCandidate) error {
	if p.format == "json" {
		return p.json(toProductsJSON(choices))
	}
	if len(choices) == 0 {
		fmt.Fprintf(p.w, "No products left for line %d\n", position)
		return nil
	}
	fmt.Fprintf(p.w, "📦 Choices for line %d:\n", position)
	p.productTable(choices)
	return nil
}

// Products prints a catalog listing
func (p *Printer) Products(condition entities.StockCondition, products []*entities.ProductCandidate) error {
	list := make([]entities.ProductCandidate, len(products))
	for i, product := range products {
		list[i] = *product
	}
	if p.format == "json" {
		return p.json(toProductsJSON(list))
	}
	fmt.Fprintf(p.w, "📦 Products (%s): %d\n", condition, len(list))
	if len(list) > 0 {
		p.productTable(list)
	}
	return nil
}

// Confirmation prints an accepted order
func (p *Printer) Confirmation(confirmation *entities.OrderConfirmation) error {
	if p.format == "json" {
		return p.json(confirmation)
	}
	fmt.Fprintf(p.w, "🧾 Order %s (%s)\n", confirmation.ID, confirmation.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(p.w, "%-20s %-10s %-10s %-12s\n", "Product", "Price", "Quantity", "Total")
	fmt.Fprintf(p.w, "%-20s %-10s %-10s %-12s\n",
		"--------------------", "----------", "----------", "------------")
	for _, line := range confirmation.Lines {
		fmt.Fprintf(p.w, "%-20s %-10s %-10d %-12s\n",
			line.ProductName,
			line.ProductPrice.StringFixed(2),
			line.Quantity,
			line.Total.StringFixed(2))
	}
	fmt.Fprintf(p.w, "Order total: %s\n", confirmation.Total.StringFixed(2))
	return nil
}

// Problems prints every issue that blocks submission
func (p *Printer) Problems(validation *allocation.ValidationError) error {
	if p.format == "json" {
		issues := make([]string, len(validation.Issues))
		for i, issue := range validation.Issues {
			issues[i] = issue.String()
		}
		return p.json(map[string][]string{"issues": issues})
	}
	fmt.Fprintf(p.w, "⚠️  Order is incomplete:\n")
	for _, issue := range validation.Issues {
		fmt.Fprintf(p.w, "  - %s\n", issue)
	}
	return nil
}

func (p *Printer) productTable(products []entities.ProductCandidate) {
	fmt.Fprintf(p.w, "%-6s %-20s %-12s %-10s %-8s\n", "ID", "Name", "Type", "Price", "Stock")
	fmt.Fprintf(p.w, "%-6s %-20s %-12s %-10s %-8s\n",
		"------", "--------------------", "------------", "----------", "--------")
	for _, product := range products {
		fmt.Fprintf(p.w, "%-6d %-20s %-12s %-10s %-8d\n",
			product.ID,
			product.Name,
			product.ProductType,
			product.Price.StringFixed(2),
			product.Stock)
	}
}

func (p *Printer) json(v any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func toLineJSON(view allocation.LineView) lineJSON {
	line := lineJSON{
		Position: view.Position,
		LineID:   view.ID.String(),
		Price:    view.Price,
		Stock:    view.Stock,
		Quantity: view.Quantity,
		Total:    view.Total,
	}
	if view.Selected {
		line.ProductID = view.ProductID
		line.ProductName = view.ProductName
	}
	for _, issue := range view.Issues {
		line.Issues = append(line.Issues, issue.String())
	}
	return line
}

func toProductsJSON(products []entities.ProductCandidate) []productJSON {
	result := make([]productJSON, len(products))
	for i, product := range products {
		result[i] = productJSON{
			ID:          product.ID,
			Name:        product.Name,
			ProductType: product.ProductType,
			Price:       product.Price.String(),
			Stock:       product.Stock,
		}
	}
	return result
}

func issueText(issues []allocation.IssueReason) string {
	if len(issues) == 0 {
		return ""
	}
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, ", ")
}
