package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, name string) (*domain.Category, error)
}

// CSVImporter reads catalog CSV files and inserts/updates products.
// Expected headers: name, category, price, stock, description, rating,
// image_url. Only name and price are mandatory per row.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

// Run parses CSV rows and upserts products, creating categories on the fly.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required header: name")
	}
	if _, ok := index["price"]; !ok {
		return 0, errors.New("missing required header: price")
	}

	categoryIDs := map[string]string{}
	imported := 0
	line := 1

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		p, categoryName, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if p == nil {
			continue
		}

		if categoryName != "" {
			id, ok := categoryIDs[categoryName]
			if !ok {
				cat, err := i.categories.Upsert(ctx, categoryName)
				if err != nil {
					return imported, fmt.Errorf("row %d: upsert category %q: %w", line, categoryName, err)
				}
				id = cat.ID
				categoryIDs[categoryName] = id
			}
			p.CategoryID = &id
		}

		if _, err := i.products.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("row %d: upsert product %q: %w", line, p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(record []string, index map[string]int) (*domain.Product, string, error) {
	name := field(record, index, "name")
	if name == "" {
		return nil, "", nil
	}

	priceRaw := field(record, index, "price")
	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, "", fmt.Errorf("parse price %q: %w", priceRaw, err)
	}

	stock := 0
	if raw := field(record, index, "stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil {
			return nil, "", fmt.Errorf("parse stock %q: %w", raw, err)
		}
	}

	rating := 5
	if raw := field(record, index, "rating"); raw != "" {
		rating, err = strconv.Atoi(raw)
		if err != nil {
			return nil, "", fmt.Errorf("parse rating %q: %w", raw, err)
		}
	}

	return &domain.Product{
		Name:        name,
		Description: field(record, index, "description"),
		Price:       price,
		Stock:       stock,
		Rating:      rating,
		ImageURL:    field(record, index, "image_url"),
	}, field(record, index, "category"), nil
}
