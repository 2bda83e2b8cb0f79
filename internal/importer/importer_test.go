package importer

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type recordingProductWriter struct {
	products []domain.Product
	err      error
}

func (w *recordingProductWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.products = append(w.products, p)
	return &p, nil
}

type recordingCategoryWriter struct {
	names []string
}

func (w *recordingCategoryWriter) Upsert(_ context.Context, name string) (*domain.Category, error) {
	w.names = append(w.names, name)
	return &domain.Category{ID: "cat-" + name, Name: name}, nil
}

func TestRunImportsRows(t *testing.T) {
	csv := strings.Join([]string{
		"name,category,price,stock,description,rating",
		"Classic T-Shirt,Apparel,19.99,25,Soft cotton tee,4",
		"Ceramic Mug,Kitchen,12.99,40,,5",
		", , , , ,",
	}, "\n")

	products := &recordingProductWriter{}
	categories := &recordingCategoryWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), products, categories)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imports, got %d", count)
	}
	if len(products.products) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(products.products))
	}
	first := products.products[0]
	if first.Name != "Classic T-Shirt" || first.Stock != 25 || first.Rating != 4 {
		t.Fatalf("unexpected product: %+v", first)
	}
	if first.Price.StringFixed(2) != "19.99" {
		t.Fatalf("unexpected price: %s", first.Price)
	}
	if first.CategoryID == nil || *first.CategoryID != "cat-Apparel" {
		t.Fatalf("unexpected category id: %v", first.CategoryID)
	}
	if len(categories.names) != 2 {
		t.Fatalf("expected 2 category upserts, got %v", categories.names)
	}
}

func TestRunReusesCategories(t *testing.T) {
	csv := strings.Join([]string{
		"name,category,price",
		"A,Gadgets,1.00",
		"B,Gadgets,2.00",
	}, "\n")
	categories := &recordingCategoryWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), &recordingProductWriter{}, categories)
	if _, err := imp.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories.names) != 1 {
		t.Fatalf("expected single category upsert, got %v", categories.names)
	}
}

func TestRunMissingHeader(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("name,stock\nA,2"), &recordingProductWriter{}, &recordingCategoryWriter{})
	if _, err := imp.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "price") {
		t.Fatalf("expected missing price header error, got %v", err)
	}
}

func TestRunBadPrice(t *testing.T) {
	csv := "name,price\nA,not-a-number"
	imp := NewCSVImporter(strings.NewReader(csv), &recordingProductWriter{}, &recordingCategoryWriter{})
	if _, err := imp.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "parse price") {
		t.Fatalf("expected price parse error, got %v", err)
	}
}

func TestRunDefaultsRatingAndStock(t *testing.T) {
	products := &recordingProductWriter{}
	imp := NewCSVImporter(strings.NewReader("name,price\nBare,3.50"), products, &recordingCategoryWriter{})
	if _, err := imp.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := products.products[0]
	if p.Stock != 0 || p.Rating != 5 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}
