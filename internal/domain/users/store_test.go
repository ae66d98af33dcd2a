package users

import (
	"context"
	"testing"

	"storefront/internal/domain/roles"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryUpdateRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectExec(`UPDATE users\s+SET role = \$1::user_role`).
		WithArgs("FAKE_ADMIN", int64(7), "USER").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.UpdateRole(context.Background(), 7, roles.User, roles.FakeAdmin))

	mock.ExpectExec(`UPDATE users\s+SET role = \$1::user_role`).
		WithArgs("USER", int64(7), "FAKE_ADMIN").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err = repo.UpdateRole(context.Background(), 7, roles.FakeAdmin, roles.User)
	assert.ErrorIs(t, err, ErrRoleChanged)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySetDisplayNameMissingUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET display_name`).
		WithArgs("nick", int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = NewRepository(mock).SetDisplayName(context.Background(), 404, "nick")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
