// Package profile builds the profile page: the redirect decision taken before
// anything is rendered, and the view-model rendered for a signed-in user.
package profile

import (
	"net/url"

	"storefront/internal/domain/roles"
	"storefront/internal/domain/users"
)

const (
	SignInPath    = "/signin"
	OrderPath     = "/order"
	DashboardPath = "/admin"
)

type Outcome uint8

const (
	Render Outcome = iota
	Redirect
)

// Decision is what GET /profile does before it builds a view.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Resolve checks the session first, then the order_id hand-off. A nil viewer
// always goes to sign in, even when order_id is set.
func Resolve(viewer *users.User, query url.Values) Decision {
	if viewer == nil {
		return Decision{Outcome: Redirect, Location: SignInPath}
	}
	if id := query.Get("order_id"); id != "" {
		v := url.Values{"orderId": {id}}
		return Decision{Outcome: Redirect, Location: OrderPath + "?" + v.Encode()}
	}
	return Decision{Outcome: Render}
}

type ActionID string

const (
	ActionBecomeFakeAdmin ActionID = "becomeFakeAdmin"
	ActionRemoveFakeAdmin ActionID = "removeFakeAdmin"
	ActionOpenDashboard   ActionID = "openDashboard"
	ActionSaveDisplayName ActionID = "saveDisplayName"
)

// Action is a control the page offers. Method and Href tell the client which
// call to make; Confirm, when set, is shown before making it.
type Action struct {
	ID      ActionID `json:"id"`
	Label   string   `json:"label"`
	Method  string   `json:"method"`
	Href    string   `json:"href"`
	Confirm string   `json:"confirm,omitempty"`
	// ReloadOnSuccess asks the client for a full reload so the session role
	// and name are read again.
	ReloadOnSuccess bool `json:"reloadOnSuccess"`
}

type TabID string

const (
	TabOrderHistory     TabID = "orderHistory"
	TabTopupInformation TabID = "topupInformation"
)

// Tab is rendered by its own sub-view, which loads Source.
type Tab struct {
	ID     TabID  `json:"id"`
	Label  string `json:"label"`
	Source string `json:"source"`
}

type View struct {
	Title string `json:"title"`
	// Name is what the page shows. CanonicalName is only set when a display
	// name overrides the account name.
	Name          string     `json:"name"`
	CanonicalName *string    `json:"canonicalName,omitempty"`
	DisplayName   string     `json:"displayName"`
	Email         string     `json:"email"`
	Image         *string    `json:"image,omitempty"`
	Role          roles.Role `json:"role"`
	Actions       []Action   `json:"actions"`
	Tabs          []Tab      `json:"tabs"`
}

func Build(u *users.User) View {
	v := View{
		Title:   u.Name + "'s profile",
		Name:    u.ShownName(),
		Email:   u.Email,
		Image:   u.Image,
		Role:    u.Role,
		Actions: actionsFor(u.Role),
		Tabs: []Tab{
			{ID: TabOrderHistory, Label: "Order History", Source: "/api/orders/me"},
			{ID: TabTopupInformation, Label: "Topup Information", Source: "/api/requirements"},
		},
	}
	if u.DisplayName != nil && *u.DisplayName != "" {
		v.DisplayName = *u.DisplayName
		name := u.Name
		v.CanonicalName = &name
	}
	return v
}

func actionsFor(r roles.Role) []Action {
	var out []Action

	switch r {
	case roles.User:
		out = append(out, Action{
			ID:              ActionBecomeFakeAdmin,
			Label:           "Be fake admin",
			Method:          "PUT",
			Href:            "/api/users/fakeAdmin",
			Confirm:         "By being a fake admin, you can access admin dashboard page BUT you can't do all admin operations",
			ReloadOnSuccess: true,
		})
	case roles.FakeAdmin:
		out = append(out, Action{
			ID:              ActionRemoveFakeAdmin,
			Label:           "Remove fake admin",
			Method:          "PUT",
			Href:            "/api/users/fakeAdmin",
			ReloadOnSuccess: true,
		})
	}

	if r.CanViewDashboard() {
		out = append(out, Action{
			ID:     ActionOpenDashboard,
			Label:  "Go to Admin Dashboard",
			Method: "GET",
			Href:   DashboardPath,
		})
	}

	return append(out, Action{
		ID:              ActionSaveDisplayName,
		Label:           "Save",
		Method:          "PUT",
		Href:            "/api/users/displayName",
		ReloadOnSuccess: true,
	})
}

// Has reports whether the view offers the action.
func (v View) Has(id ActionID) bool {
	for _, a := range v.Actions {
		if a.ID == id {
			return true
		}
	}
	return false
}
