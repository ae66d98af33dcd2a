package admindashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOverview(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{
		"users", "fake_admins", "admins",
		"products", "discounted", "categories", "topup",
		"orders", "pending", "paid", "cancelled", "revenue", "carts",
	}
	mock.ExpectQuery(`SELECT\s+\(SELECT COUNT\(\*\) FROM users\)`).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			int64(10), int64(2), int64(1),
			int64(40), int64(5), int64(6), int64(3),
			int64(12), int64(4), int64(7), int64(1), 321.5, int64(3),
		))

	o, err := NewRepository(mock).GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), o.TotalUsers)
	assert.Equal(t, int64(2), o.TotalFakeAdmins)
	assert.Equal(t, int64(3), o.TotalTopupCategories)
	assert.Equal(t, int64(7), o.TotalPaid)
	assert.Equal(t, 321.5, o.Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOverviewError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users`).WillReturnError(errors.New("boom"))

	_, err = NewRepository(mock).GetOverview(context.Background())
	assert.ErrorContains(t, err, "get admin overview")
}
