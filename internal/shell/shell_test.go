package shell

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/requirements"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type cartFunc func(ctx context.Context, userID int64) (*carts.CartView, error)

func (f cartFunc) GetView(ctx context.Context, userID int64) (*carts.CartView, error) {
	return f(ctx, userID)
}

type reqFunc func(ctx context.Context, userID int64) (requirements.Set, error)

func (f reqFunc) ListByUser(ctx context.Context, userID int64) (requirements.Set, error) {
	return f(ctx, userID)
}

func TestShowContinuePay(t *testing.T) {
	hidden := []string{"/cart", "/signin", "/order", "/admin", "/admin/products", "/order?orderId=1", "cart"}
	for _, r := range hidden {
		assert.False(t, ShowContinuePay(r), r)
	}
	shown := []string{"/", "", "/profile", "/products/phone", "/carts", "/administrator"}
	for _, r := range shown {
		assert.True(t, ShowContinuePay(r), r)
	}
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme(" Light "))
	assert.Equal(t, ThemeDevice, ParseTheme(""))
	assert.Equal(t, ThemeDevice, ParseTheme("sepia"))
}

func TestLoadOrderAndSuccess(t *testing.T) {
	var calls []string
	reqs := reqFunc(func(ctx context.Context, userID int64) (requirements.Set, error) {
		calls = append(calls, "requirements")
		return requirements.Set{"pubg": {"playerId": "1"}}, nil
	})
	cart := cartFunc(func(ctx context.Context, userID int64) (*carts.CartView, error) {
		calls = append(calls, "cart")
		return &carts.CartView{ID: 9, Products: []carts.Line{{ProductID: 1, Quantity: 1}}}, nil
	})

	s := NewLoader(cart, reqs, nil).Load(context.Background(), 1, "/profile", "dark")

	assert.Equal(t, []string{"requirements", "cart"}, calls)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.True(t, s.ContinuePay)
	assert.False(t, s.Degraded())
	assert.Equal(t, Loaded, s.Cart.Status)
	assert.Equal(t, int64(9), s.Cart.Value.ID)
	assert.Equal(t, Loaded, s.Requirements.Status)
	assert.Equal(t, "1", s.Requirements.Value["pubg"]["playerId"])
}

func TestLoadFallsBackAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core).Sugar()

	reqs := reqFunc(func(ctx context.Context, userID int64) (requirements.Set, error) {
		return nil, errors.New("db down")
	})
	cart := cartFunc(func(ctx context.Context, userID int64) (*carts.CartView, error) {
		return nil, errors.New("timeout")
	})

	s := NewLoader(cart, reqs, logger).Load(context.Background(), 1, "/cart", "")

	assert.True(t, s.Degraded())
	assert.False(t, s.ContinuePay)
	assert.Equal(t, ThemeDevice, s.Theme)

	assert.Equal(t, Fallback, s.Requirements.Status)
	assert.Equal(t, "db down", s.Requirements.Error)
	assert.NotNil(t, s.Requirements.Value)

	assert.Equal(t, Fallback, s.Cart.Status)
	assert.Equal(t, "timeout", s.Cart.Error)
	require.NotNil(t, s.Cart.Value)
	assert.NotNil(t, s.Cart.Value.Products)

	assert.Equal(t, 2, logs.Len())
}

func TestLoadCartFailureDoesNotAffectRequirements(t *testing.T) {
	reqs := reqFunc(func(ctx context.Context, userID int64) (requirements.Set, error) {
		return nil, nil
	})
	cart := cartFunc(func(ctx context.Context, userID int64) (*carts.CartView, error) {
		return nil, errors.New("boom")
	})

	s := NewLoader(cart, reqs, nil).Load(context.Background(), 1, "/", "light")
	assert.Equal(t, Loaded, s.Requirements.Status)
	assert.NotNil(t, s.Requirements.Value)
	assert.Equal(t, Fallback, s.Cart.Status)
}
