package admindashboard

import (
	"context"
	"fmt"

	"storefront/internal/infra/dbx"
)

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) GetOverview(ctx context.Context) (*Overview, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'FAKE_ADMIN'),
			(SELECT COUNT(*) FROM users WHERE role = 'ADMIN'),

			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE discount > 0),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM categories WHERE is_topup),

			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM orders WHERE status = 'paid'),
			(SELECT COUNT(*) FROM orders WHERE status = 'cancelled'),
			(SELECT COALESCE(SUM(total), 0)::float8 FROM orders WHERE status = 'paid'),
			(SELECT COUNT(DISTINCT cart_id) FROM cart_items)
	`

	var o Overview
	err := r.q.QueryRow(ctx, q).Scan(
		&o.TotalUsers,
		&o.TotalFakeAdmins,
		&o.TotalAdmins,

		&o.TotalProducts,
		&o.TotalDiscountedProducts,
		&o.TotalCategories,
		&o.TotalTopupCategories,

		&o.TotalOrders,
		&o.TotalPending,
		&o.TotalPaid,
		&o.TotalCancelled,
		&o.Revenue,
		&o.ActiveCarts,
	)
	if err != nil {
		return nil, fmt.Errorf("get admin overview: %w", err)
	}

	return &o, nil
}
