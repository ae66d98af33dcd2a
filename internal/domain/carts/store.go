package carts

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

// ensureCart returns the user's cart id, creating the cart on first use.
// carts.user_id is unique, so concurrent callers converge on one row.
func (r *Repository) ensureCart(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING id
`, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensure cart: %w", err)
	}
	return id, nil
}

func (r *Repository) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	cartID, err := r.ensureCart(ctx, userID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`, cartID, productID, qty)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("add item: %w", err)
	}
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, userID, productID int64) error {
	tag, err := r.db.Exec(ctx, `
DELETE FROM cart_items
WHERE product_id = $2
  AND cart_id = (SELECT id FROM carts WHERE user_id = $1)
`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)
`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// GetView returns the priced cart of a user, or an empty view when the user
// has never added anything.
func (r *Repository) GetView(ctx context.Context, userID int64) (*CartView, error) {
	v := Empty()

	err := r.db.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&v.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return v, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.db.Query(ctx, `
SELECT p.id, p.title, COALESCE(p.img, ''), p.price, p.discount, ci.quantity, c.slug, c.is_topup
FROM cart_items ci
JOIN products p   ON p.id = ci.product_id
JOIN categories c ON c.id = p.category_id
WHERE ci.cart_id = $1
ORDER BY ci.product_id ASC
`, v.ID)
	if err != nil {
		return nil, fmt.Errorf("cart lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Title, &l.Img, &l.Price, &l.Discount, &l.Quantity, &l.CategorySlug, &l.Topup); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		v.Products = append(v.Products, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart lines rows: %w", err)
	}

	v.recompute()
	return v, nil
}
