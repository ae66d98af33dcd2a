// Package shell assembles the state a client needs on first load: theme,
// cart, top-up requirements and whether to show the continue-to-pay button.
package shell

import (
	"context"
	"strings"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/requirements"

	"go.uber.org/zap"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeDevice Theme = "device"
)

// ParseTheme falls back to ThemeDevice for anything it does not know.
func ParseTheme(s string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t
	default:
		return ThemeDevice
	}
}

type Status string

const (
	Loaded   Status = "loaded"
	Fallback Status = "fallback"
)

// Field is a loaded value plus how it was obtained. On Fallback, Value is
// the empty default and Error says why.
type Field[T any] struct {
	Value  T      `json:"value"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

type State struct {
	Theme        Theme                   `json:"theme"`
	Requirements Field[requirements.Set] `json:"requirements"`
	Cart         Field[*carts.CartView]  `json:"cart"`
	ContinuePay  bool                    `json:"continuePay"`
}

// Degraded reports whether any field fell back to its default.
func (s State) Degraded() bool {
	return s.Requirements.Status == Fallback || s.Cart.Status == Fallback
}

var noContinuePay = map[string]bool{
	"cart":   true,
	"signin": true,
	"order":  true,
	"admin":  true,
}

// ShowContinuePay is false on routes whose first path segment is cart,
// signin, order or admin.
func ShowContinuePay(route string) bool {
	route = strings.TrimPrefix(route, "/")
	first, _, _ := strings.Cut(route, "/")
	first, _, _ = strings.Cut(first, "?")
	return !noContinuePay[first]
}

type CartSource interface {
	GetView(ctx context.Context, userID int64) (*carts.CartView, error)
}

type RequirementSource interface {
	ListByUser(ctx context.Context, userID int64) (requirements.Set, error)
}

type Loader struct {
	carts  CartSource
	reqs   RequirementSource
	logger *zap.SugaredLogger
}

func NewLoader(c CartSource, r RequirementSource, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{carts: c, reqs: r, logger: logger}
}

// Load fetches requirements and then the cart. A failed source is logged and
// replaced by its empty default, so Load itself never fails.
func (l *Loader) Load(ctx context.Context, userID int64, route, theme string) State {
	s := State{
		Theme:       ParseTheme(theme),
		ContinuePay: ShowContinuePay(route),
	}

	set, err := l.reqs.ListByUser(ctx, userID)
	if err != nil {
		l.logger.Warnw("shell: requirements fallback", "user_id", userID, "error", err.Error())
		s.Requirements = Field[requirements.Set]{Value: requirements.Set{}, Status: Fallback, Error: err.Error()}
	} else {
		if set == nil {
			set = requirements.Set{}
		}
		s.Requirements = Field[requirements.Set]{Value: set, Status: Loaded}
	}

	view, err := l.carts.GetView(ctx, userID)
	if err != nil {
		l.logger.Warnw("shell: cart fallback", "user_id", userID, "error", err.Error())
		s.Cart = Field[*carts.CartView]{Value: carts.Empty(), Status: Fallback, Error: err.Error()}
	} else {
		if view == nil {
			view = carts.Empty()
		}
		s.Cart = Field[*carts.CartView]{Value: view, Status: Loaded}
	}

	return s
}
