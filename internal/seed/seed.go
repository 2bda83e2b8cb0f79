package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Category    string
	Name        string
	Description string
	Price       string
	Stock       int
	Rating      int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []string{"Apparel", "Kitchen", "Gadgets"}
	categoryIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		id, err := ensureCategory(ctx, pool, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			Category:    "Apparel",
			Name:        "Classic T-Shirt",
			Description: "Soft cotton tee",
			Price:       "19.99",
			Stock:       25,
			Rating:      4,
		},
		{
			Category:    "Kitchen",
			Name:        "Ceramic Mug",
			Description: "Holds 350ml of coffee",
			Price:       "12.99",
			Stock:       40,
			Rating:      5,
		},
		{
			Category:    "Gadgets",
			Name:        "Wireless Widget",
			Description: "The widget everyone searches for",
			Price:       "34.50",
			Stock:       10,
			Rating:      5,
		},
		{
			Category:    "Gadgets",
			Name:        "Pocket Widget",
			Description: "A smaller widget for small pockets",
			Price:       "9.99",
			Stock:       0,
			Rating:      3,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	const q = `
INSERT INTO products (category_id, name, description, price, stock, rating)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
ON CONFLICT (name) DO UPDATE SET
    category_id = EXCLUDED.category_id,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    stock = EXCLUDED.stock,
    rating = EXCLUDED.rating
`
	_, err := pool.Exec(ctx, q, categoryID, p.Name, p.Description, p.Price, p.Stock, p.Rating)
	return err
}
