package orders

import (
	"context"
	"errors"
	"sort"
	"time"

	"storefront/internal/domain/carts"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrStatusTransition = errors.New("order status cannot change")
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// CanTransition reports whether an order may move from one status to another.
// Only pending orders move, and only to paid or cancelled.
func CanTransition(from, to string) bool {
	return from == StatusPending && (to == StatusPaid || to == StatusCancelled)
}

type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Subtotal    float64   `json:"subtotal"`
	Tax         float64   `json:"tax"`
	Discount    float64   `json:"discount"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Item is the snapshot of a cart line taken at checkout.
type Item struct {
	ID           int64             `json:"id"`
	OrderID      int64             `json:"orderId"`
	ProductID    *int64            `json:"productId,omitempty"`
	Title        string            `json:"title"`
	Price        float64           `json:"price"`
	Quantity     int               `json:"quantity"`
	Requirements map[string]string `json:"requirements,omitempty"`
}

type Detail struct {
	Order Order  `json:"order"`
	Items []Item `json:"items"`
}

type Store interface {
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Order, int, error)
	GetDetailForUser(ctx context.Context, userID, orderID int64) (*Detail, error)
	// CreateFromCart must run inside a transaction together with the cart clear.
	CreateFromCart(ctx context.Context, userID int64, requirements map[string]map[string]string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, to string) (*Order, error)
}

// MissingRequirements lists, sorted, the slugs of topup categories in the
// cart for which the user has stored no requirement values.
func MissingRequirements(lines []carts.Line, have map[string]map[string]string) []string {
	seen := map[string]bool{}
	missing := []string{}
	for _, l := range lines {
		if !l.Topup || seen[l.CategorySlug] {
			continue
		}
		seen[l.CategorySlug] = true
		if len(have[l.CategorySlug]) == 0 {
			missing = append(missing, l.CategorySlug)
		}
	}
	sort.Strings(missing)
	return missing
}
