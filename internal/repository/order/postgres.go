package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id::text, complete, COALESCE(transaction_id, ''), created_at`

func (r *postgresRepo) GetOrCreateOpen(ctx context.Context, userID string) (*domain.Order, error) {
	// The no-op DO UPDATE makes the insert return the existing open row
	// instead of erroring, so get-or-create is a single statement.
	const q = `
INSERT INTO orders (user_id)
VALUES ($1)
ON CONFLICT (user_id) WHERE NOT complete
DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING ` + orderColumns
	o, err := r.scanOrder(ctx, r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		r.logger.Printf("order repo: get-or-create user_id=%s error=%v", userID, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetOpen(ctx context.Context, userID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1 AND NOT complete
`
	o, err := r.scanOrder(ctx, r.pool.QueryRow(ctx, q, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get open user_id=%s error=%v", userID, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, orderID, productID string, quantity int) error {
	const q = `
INSERT INTO order_items (order_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (order_id, product_id)
DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity
`
	if _, err := r.pool.Exec(ctx, q, orderID, productID, quantity); err != nil {
		r.logger.Printf("order repo: add item order_id=%s product_id=%s error=%v", orderID, productID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, orderID, productID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE order_items
SET quantity = quantity - 1
WHERE order_id = $1 AND product_id = $2 AND quantity > 1
`, orderID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Either the line is at quantity 1 and must go, or it does not
		// exist and the delete is a no-op.
		if _, err := tx.Exec(ctx, `
DELETE FROM order_items
WHERE order_id = $1 AND product_id = $2
`, orderID, productID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Checkout(ctx context.Context, orderID, transactionID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
SELECT oi.product_id::text, COALESCE(p.name, ''), oi.quantity
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.added_at ASC
`, orderID)
	if err != nil {
		return err
	}

	type line struct {
		productID *string
		name      string
		quantity  int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.name, &l.quantity); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.ErrEmptyCart
	}

	for _, l := range lines {
		if l.productID == nil {
			// The product was deleted after it was carted; there is no
			// stock to reserve and the line contributes nothing.
			continue
		}
		cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $1
WHERE id = $2 AND stock >= $1
`, l.quantity, *l.productID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			r.logger.Printf("order repo: checkout order_id=%s oversold product=%q", orderID, l.name)
			return &domain.OutOfStockError{ProductName: l.name}
		}
	}

	cmd, err := tx.Exec(ctx, `
UPDATE orders
SET complete = TRUE, transaction_id = $1
WHERE id = $2 AND NOT complete
`, transactionID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: checkout order_id=%s committed transaction_id=%s", orderID, transactionID)
	return nil
}

func (r *postgresRepo) ListCompleted(ctx context.Context, userID, filter string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
WHERE o.user_id = $1 AND o.complete
  AND ($2 = ''
       OR o.id::text ILIKE '%' || $2 || '%'
       OR EXISTS (
           SELECT 1
           FROM order_items oi
           JOIN products p ON p.id = oi.product_id
           WHERE oi.order_id = o.id AND p.name ILIKE '%' || $2 || '%'))
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID, filter)
	if err != nil {
		r.logger.Printf("order repo: list completed user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Complete, &o.TransactionID, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.fetchItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) GetCompleted(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2 AND complete
`
	o, err := r.scanOrder(ctx, r.pool.QueryRow(ctx, q, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get completed id=%s error=%v", orderID, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) scanOrder(ctx context.Context, row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Complete, &o.TransactionID, &o.CreatedAt); err != nil {
		return nil, err
	}
	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text,
       COALESCE(p.name, ''), COALESCE(p.price, 0)::text, oi.quantity, oi.added_at
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.added_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
