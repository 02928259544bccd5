package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderdesk/pkg/domain/entities"
)

var productsHeader = []string{"id", "name", "product_type", "price", "stock"}

// Loader handles loading catalog data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads products from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.ProductCandidate, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open products file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadProducts(file)
}

// ReadProducts parses products CSV content
func (l *Loader) ReadProducts(r io.Reader) ([]*entities.ProductCandidate, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read products CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("products CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, productsHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", productsHeader, header)
	}

	var products []*entities.ProductCandidate
	for i, record := range records[1:] {
		if len(record) != len(productsHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(productsHeader), len(record))
		}

		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}

		products = append(products, product)
	}

	return products, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(actual[i]) != col {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.ProductCandidate, error) {
	idStr := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	productType := strings.TrimSpace(record[2])
	priceStr := strings.TrimSpace(record[3])
	stockStr := strings.TrimSpace(record[4])

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %s", idStr)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %s", priceStr)
	}

	stock, err := strconv.ParseInt(stockStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stock: %s", stockStr)
	}

	return entities.NewProductCandidate(entities.ProductID(id), name, productType, price, entities.Quantity(stock))
}
