package admindashboard

import "context"

// Overview is the read-only summary shown on the admin dashboard. Fake admins
// see the same numbers as admins.
type Overview struct {
	// Users
	TotalUsers      int64 `json:"total_users"`
	TotalFakeAdmins int64 `json:"total_fake_admins"`
	TotalAdmins     int64 `json:"total_admins"`

	// Catalog
	TotalProducts           int64 `json:"total_products"`
	TotalDiscountedProducts int64 `json:"total_discounted_products"`
	TotalCategories         int64 `json:"total_categories"`
	TotalTopupCategories    int64 `json:"total_topup_categories"`

	// Orders
	TotalOrders    int64   `json:"total_orders"`
	TotalPending   int64   `json:"total_pending_orders"`
	TotalPaid      int64   `json:"total_paid_orders"`
	TotalCancelled int64   `json:"total_cancelled_orders"`
	Revenue        float64 `json:"revenue"`
	ActiveCarts    int64   `json:"active_carts"`
}

type Store interface {
	GetOverview(ctx context.Context) (*Overview, error)
}
