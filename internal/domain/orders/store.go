package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var QueryTimeoutDuration = time.Second * 5

type Repository struct {
	q   dbx.Querier
	gen *NumberGenerator
}

func NewRepository(q dbx.Querier, gen *NumberGenerator) *Repository {
	if gen == nil {
		gen, _ = NewNumberGenerator("", "")
	}
	return &Repository{q: q, gen: gen}
}

const orderColumns = `id, user_id, order_number, status, subtotal, tax, discount, total, created_at`

func scanOrder(row pgx.Row, o *Order, extra ...any) error {
	dest := append([]any{
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status,
		&o.Subtotal, &o.Tax, &o.Discount, &o.Total, &o.CreatedAt,
	}, extra...)
	return row.Scan(dest...)
}

// ListByUser returns a page of the user's orders, newest first, and the total
// number of orders the user has.
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.q.Query(ctx, `
SELECT `+orderColumns+`, COUNT(*) OVER() AS total_count
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []Order{}
	total := 0
	for rows.Next() {
		var o Order
		var t int
		if err := scanOrder(rows, &o, &t); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		total = t
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("orders rows: %w", err)
	}
	return out, total, nil
}

func (r *Repository) GetDetailForUser(ctx context.Context, userID, orderID int64) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var d Detail
	err := scanOrder(r.q.QueryRow(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE id = $1 AND user_id = $2`,
		orderID, userID,
	), &d.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *Repository) loadItems(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.q.Query(ctx, `
SELECT id, order_id, product_id, title, price, quantity, requirements
FROM order_items
WHERE order_id = $1
ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		var reqs []byte
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Title, &it.Price, &it.Quantity, &reqs); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if len(reqs) > 0 {
			if err := json.Unmarshal(reqs, &it.Requirements); err != nil {
				return nil, fmt.Errorf("order item requirements: %w", err)
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order items rows: %w", err)
	}
	return items, nil
}

// CreateFromCart snapshots the user's cart into a new order. The cart row is
// locked so two concurrent checkouts cannot both read the same items.
func (r *Repository) CreateFromCart(ctx context.Context, userID int64, requirements map[string]map[string]string) (*Order, error) {
	var cartID int64
	err := r.q.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("lock cart: %w", err)
	}

	o := &Order{UserID: userID, Status: StatusPending}
	if err := r.q.QueryRow(ctx, `
SELECT
  COALESCE(SUM(p.price * ci.quantity), 0),
  COALESCE(SUM(LEAST(p.discount, p.price) * ci.quantity), 0)
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1`, cartID).Scan(&o.Subtotal, &o.Discount); err != nil {
		return nil, fmt.Errorf("price cart: %w", err)
	}
	if o.Subtotal <= 0 {
		return nil, ErrEmptyCart
	}
	o.Total = o.Subtotal - o.Discount + o.Tax
	number, err := r.gen.Next(userID)
	if err != nil {
		return nil, err
	}
	o.OrderNumber = number

	if err := r.q.QueryRow(ctx, `
INSERT INTO orders (user_id, order_number, status, subtotal, tax, discount, total)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`,
		o.UserID, o.OrderNumber, o.Status, o.Subtotal, o.Tax, o.Discount, o.Total,
	).Scan(&o.ID, &o.CreatedAt); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if requirements == nil {
		requirements = map[string]map[string]string{}
	}
	reqJSON, err := json.Marshal(requirements)
	if err != nil {
		return nil, fmt.Errorf("marshal requirements: %w", err)
	}

	if _, err := r.q.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, title, price, quantity, requirements)
SELECT $1, p.id, p.title, GREATEST(p.price - p.discount, 0), ci.quantity,
       CASE WHEN c.is_topup THEN $3::jsonb -> c.slug ELSE NULL END
FROM cart_items ci
JOIN products p   ON p.id = ci.product_id
JOIN categories c ON c.id = p.category_id
WHERE ci.cart_id = $2
ORDER BY ci.product_id`,
		o.ID, cartID, reqJSON,
	); err != nil {
		return nil, fmt.Errorf("snapshot order items: %w", err)
	}

	return o, nil
}

// UpdateStatus moves a pending order to paid or cancelled. The status check
// and the update are one statement so concurrent updates cannot both win.
func (r *Repository) UpdateStatus(ctx context.Context, orderID int64, to string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if !CanTransition(StatusPending, to) {
		return nil, fmt.Errorf("%w: to %q", ErrStatusTransition, to)
	}

	var o Order
	err := scanOrder(r.q.QueryRow(ctx, `
UPDATE orders SET status = $2
WHERE id = $1 AND status = $3
RETURNING `+orderColumns, orderID, to, StatusPending), &o)
	if err == nil {
		return &o, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	var current string
	err = r.q.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read order status: %w", err)
	}
	return nil, fmt.Errorf("%w: %s to %s", ErrStatusTransition, current, to)
}
