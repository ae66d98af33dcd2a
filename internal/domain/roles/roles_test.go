package roles

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Role{
		"USER":       User,
		"fake_admin": FakeAdmin,
		" ADMIN ":    Admin,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("SUPERUSER")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestToggleFakeAdmin(t *testing.T) {
	next, err := ToggleFakeAdmin(User)
	require.NoError(t, err)
	assert.Equal(t, FakeAdmin, next)

	next, err = ToggleFakeAdmin(next)
	require.NoError(t, err)
	assert.Equal(t, User, next)

	next, err = ToggleFakeAdmin(Admin)
	assert.ErrorIs(t, err, ErrRoleNotToggleable)
	assert.Equal(t, Admin, next)

	_, err = ToggleFakeAdmin(Unknown)
	assert.ErrorIs(t, err, ErrRoleNotToggleable)
}

func TestPermissions(t *testing.T) {
	assert.False(t, User.CanViewDashboard())
	assert.True(t, FakeAdmin.CanViewDashboard())
	assert.True(t, Admin.CanViewDashboard())

	assert.False(t, User.CanManageCatalog())
	assert.False(t, FakeAdmin.CanManageCatalog())
	assert.True(t, Admin.CanManageCatalog())

	assert.True(t, Admin.Satisfies(Admin))
	assert.False(t, FakeAdmin.Satisfies(Admin))
	assert.True(t, FakeAdmin.Satisfies(User))
	assert.False(t, Unknown.Satisfies(User))
}

func TestJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Role Role `json:"role"`
	}

	b, err := json.Marshal(wrapper{Role: FakeAdmin})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"FAKE_ADMIN"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"role":"ADMIN"}`), &w))
	assert.Equal(t, Admin, w.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"ROOT"}`), &w))
}

func TestScanValue(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan("FAKE_ADMIN"))
	assert.Equal(t, FakeAdmin, r)

	require.NoError(t, r.Scan([]byte("USER")))
	assert.Equal(t, User, r)

	v, err := Admin.Value()
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", v)

	_, err = Unknown.Value()
	assert.Error(t, err)
}
