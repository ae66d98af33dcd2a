package carts

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetViewWithoutCartIsEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM carts WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	v, err := NewRepository(mock).GetView(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.ID)
	assert.NotNil(t, v.Products)
	assert.Empty(t, v.Products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetViewPricesLines(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM carts WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(`FROM cart_items ci`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "img", "price", "discount", "quantity", "slug", "is_topup"}).
			AddRow(int64(1), "86 Diamonds", "a.png", 2.0, 0.5, 2, "mobile-legends", true).
			AddRow(int64(2), "Phone", "p.png", 300.0, 0.0, 1, "gadgets", false))

	v, err := NewRepository(mock).GetView(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, v.Products, 2)
	assert.Equal(t, int64(3), v.ID)
	assert.InDelta(t, 304.0, v.Subtotal, 1e-9)
	assert.InDelta(t, 303.0, v.Total, 1e-9)
	assert.InDelta(t, 1.0, v.Discount, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	err = NewRepository(mock).AddItem(context.Background(), 1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs(int64(1), int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewRepository(mock).RemoveItem(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLineUnitPriceNeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, Line{Price: 1, Discount: 5}.UnitPrice())
	assert.Equal(t, 4.0, Line{Price: 5, Discount: 1}.UnitPrice())
}
