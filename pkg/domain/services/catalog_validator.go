package services

import (
	"fmt"
	"slices"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

// CatalogValidator checks a product list before it becomes a catalog
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	DuplicateIDs  []entities.ProductID
	DuplicateName []string
	OutOfStock    []entities.ProductID
	Errors        []string
}

// Valid reports whether the catalog can be loaded
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateCatalog reports every problem in one pass. Duplicate ids and invalid
// products are errors; duplicate names and products without stock are only
// reported, since neither prevents ordering.
func (v *CatalogValidator) ValidateCatalog(products []*entities.ProductCandidate) *ValidationResult {
	result := &ValidationResult{
		DuplicateIDs:  make([]entities.ProductID, 0),
		DuplicateName: make([]string, 0),
		OutOfStock:    make([]entities.ProductID, 0),
		Errors:        make([]string, 0),
	}

	seenIDs := make(map[entities.ProductID]bool, len(products))
	seenNames := make(map[string]bool, len(products))
	for i, product := range products {
		if product == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("product %d is missing", i))
			continue
		}
		if err := product.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("product %d: %v", product.ID, err))
		}

		if seenIDs[product.ID] {
			result.DuplicateIDs = append(result.DuplicateIDs, product.ID)
		}
		seenIDs[product.ID] = true

		if seenNames[product.Name] && !slices.Contains(result.DuplicateName, product.Name) {
			result.DuplicateName = append(result.DuplicateName, product.Name)
		}
		seenNames[product.Name] = true

		if product.Stock == 0 {
			result.OutOfStock = append(result.OutOfStock, product.ID)
		}
	}

	if len(result.DuplicateIDs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("duplicate product ids found: %v", result.DuplicateIDs))
	}

	return result
}
