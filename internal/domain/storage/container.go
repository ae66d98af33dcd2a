package storage

import (
	"context"
	"errors"

	"storefront/internal/domain/admindashboard"
	"storefront/internal/domain/carts"
	"storefront/internal/domain/orders"
	"storefront/internal/domain/products"
	"storefront/internal/domain/requirements"
	"storefront/internal/domain/users"
	"storefront/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	dbx.Querier
	dbx.TxBeginner
}

type Sales struct {
	Carts        carts.Store
	Orders       orders.Store
	Requirements requirements.Store
}

type Container struct {
	db       DB
	orderNum *orders.NumberGenerator

	Users     users.Store
	Products  products.Store
	Sales     Sales
	Dashboard admindashboard.Store
}

func NewContainer(db DB, orderNum *orders.NumberGenerator) *Container {
	return &Container{
		db:        db,
		orderNum:  orderNum,
		Users:     users.NewRepository(db),
		Products:  products.NewRepository(db),
		Dashboard: admindashboard.NewRepository(db),
		Sales: Sales{
			Carts:        carts.NewRepository(db),
			Orders:       orders.NewRepository(db, orderNum),
			Requirements: requirements.NewRepository(db),
		},
	}
}

// WithSalesTx runs fn with sales repositories bound to one transaction. The
// transaction commits only when fn returns nil.
func (c *Container) WithSalesTx(ctx context.Context, fn func(s *Sales) error) error {
	if c.db == nil {
		return errors.New("storage: container has no database")
	}
	return dbx.WithTx(ctx, c.db, func(tx pgx.Tx) error {
		return fn(&Sales{
			Carts:        carts.NewRepository(tx),
			Orders:       orders.NewRepository(tx, c.orderNum),
			Requirements: requirements.NewRepository(tx),
		})
	})
}
