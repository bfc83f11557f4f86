package inventory

import (
	"context"
	"strconv"
)

// Product is a read-only projection of one inventory spreadsheet row.
// There is no identity beyond row order in the source range.
type Product struct {
	Codigo       string `json:"codigo"`
	Producto     string `json:"producto"`
	Categoria    string `json:"categoria"`
	Subcategoria string `json:"subcategoria"`
	Presentacion string `json:"presentacion"`
	Stock        int    `json:"stock"`
}

// RangeReader reads a spreadsheet range as string rows. Satisfied by
// *gsheets.Client.
type RangeReader interface {
	GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// Service reads the clinic inventory through from its spreadsheet on every
// call; nothing is persisted or cached locally.
type Service struct {
	sheets        RangeReader
	spreadsheetID string
	readRange     string
}

// NewService creates an inventory service bound to one spreadsheet range.
func NewService(sheets RangeReader, spreadsheetID, readRange string) *Service {
	return &Service{
		sheets:        sheets,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

// List returns every product in the configured range. Column layout:
// A=codigo, B=producto, C=categoria, D=subcategoria, E=presentacion,
// I=stock. An empty range yields an empty slice.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	rows, err := s.sheets.GetRange(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Product{
			Codigo:       cell(row, 0),
			Producto:     cell(row, 1),
			Categoria:    cell(row, 2),
			Subcategoria: cell(row, 3),
			Presentacion: cell(row, 4),
			Stock:        parseStock(cell(row, 8)),
		})
	}
	return products, nil
}

// LowStock returns the products whose stock sits below the threshold.
func LowStock(products []Product, threshold int) []Product {
	var low []Product
	for _, p := range products {
		if p.Stock < threshold {
			low = append(low, p)
		}
	}
	return low
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseStock treats non-numeric stock cells as 0 rather than erroring.
func parseStock(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
