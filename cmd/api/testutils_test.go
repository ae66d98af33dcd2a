package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain/admindashboard"
	"storefront/internal/domain/carts"
	"storefront/internal/domain/orders"
	"storefront/internal/domain/products"
	"storefront/internal/domain/requirements"
	"storefront/internal/domain/roles"
	"storefront/internal/domain/storage"
	"storefront/internal/domain/users"
	"storefront/internal/shell"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- users ---

type memUsers struct {
	mu   sync.Mutex
	byID map[int64]*users.User
	// deadlines records, per method, whether the last call had a deadline.
	deadlines map[string]bool
}

func newMemUsers(list ...*users.User) *memUsers {
	m := &memUsers{byID: map[int64]*users.User{}, deadlines: map[string]bool{}}
	for _, u := range list {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.note(ctx, "GetByID")
	u, ok := m.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, users.ErrNotFound
}

func (m *memUsers) UpdateRole(ctx context.Context, id int64, from, to roles.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.note(ctx, "UpdateRole")
	u, ok := m.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	if u.Role != from {
		return users.ErrRoleChanged
	}
	u.Role = to
	return nil
}

func (m *memUsers) SetDisplayName(ctx context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.note(ctx, "SetDisplayName")
	u, ok := m.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	u.DisplayName = &name
	return nil
}

func (m *memUsers) note(ctx context.Context, method string) {
	_, ok := ctx.Deadline()
	m.deadlines[method] = ok
}

func (m *memUsers) hadDeadline(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deadlines[method]
}

func (m *memUsers) role(id int64) roles.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id].Role
}

// --- catalog ---

type memCatalog struct {
	mu         sync.Mutex
	categories map[string]*products.Category
	products   []*products.Product
	nextID     int64
}

func newMemCatalog(cats ...*products.Category) *memCatalog {
	c := &memCatalog{categories: map[string]*products.Category{}}
	for _, cat := range cats {
		c.categories[cat.Slug] = cat
	}
	return c
}

func (c *memCatalog) ListCategories(context.Context) ([]*products.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*products.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (c *memCatalog) GetCategoryBySlug(_ context.Context, slug string) (*products.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cat, ok := c.categories[slug]
	if !ok {
		return nil, products.ErrCategoryNotFound
	}
	return cat, nil
}

func (c *memCatalog) GetSubCategoryBySlug(_ context.Context, slug string) (*products.SubCategory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.categories {
		if sc := cat.SubCategory(slug); sc != nil {
			return sc, nil
		}
	}
	return nil, products.ErrSubCategoryNotFound
}

func (c *memCatalog) SetCategoryLogo(_ context.Context, slug, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cat, ok := c.categories[slug]
	if !ok {
		return products.ErrCategoryNotFound
	}
	cat.LogoImg = url
	return nil
}

func (c *memCatalog) SetSubCategoryLogo(_ context.Context, slug, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cat := range c.categories {
		if sc := cat.SubCategory(slug); sc != nil {
			sc.LogoImg = url
			return nil
		}
	}
	return products.ErrSubCategoryNotFound
}

// ListProducts mirrors the SQL filter of the repository.
func (c *memCatalog) ListProducts(_ context.Context, f products.Filter) ([]*products.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []*products.Product{}
	for _, p := range c.products {
		var cat *products.Category
		for _, candidate := range c.categories {
			if candidate.ID == p.CategoryID {
				cat = candidate
			}
		}
		if f.Category != "" && (cat == nil || cat.Slug != f.Category) {
			continue
		}
		if f.From != nil && p.Price < *f.From {
			continue
		}
		if f.To != nil && p.Price > *f.To {
			continue
		}
		if f.DiscountOnly && p.Discount <= 0 {
			continue
		}
		cp := *p
		if !f.Include.Category {
			cp.Category = nil
		} else {
			cp.Category = cat
		}
		if !f.Include.SubCategory {
			cp.SubCategory = nil
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (c *memCatalog) InsertProduct(_ context.Context, p *products.Product) (*products.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insert(p)
	return p, nil
}

func (c *memCatalog) InsertProducts(_ context.Context, ps []*products.Product) ([]*products.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range ps {
		c.insert(p)
	}
	return ps, nil
}

func (c *memCatalog) insert(p *products.Product) {
	c.nextID++
	p.ID = c.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	c.products = append(c.products, p)
}

func (c *memCatalog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.products)
}

// --- sales ---

type memCarts struct {
	views map[int64]*carts.CartView
	err   error
}

func (m *memCarts) GetView(_ context.Context, userID int64) (*carts.CartView, error) {
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.views[userID]; ok {
		return v, nil
	}
	return carts.Empty(), nil
}

func (m *memCarts) AddItem(context.Context, int64, int64, int) error { return nil }
func (m *memCarts) RemoveItem(context.Context, int64, int64) error   { return carts.ErrItemNotFound }
func (m *memCarts) Clear(context.Context, int64) error               { return nil }

type memRequirements struct {
	sets map[int64]requirements.Set
	err  error
}

func (m *memRequirements) ListByUser(_ context.Context, userID int64) (requirements.Set, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.sets[userID]; ok {
		return s, nil
	}
	return requirements.Set{}, nil
}

func (m *memRequirements) Upsert(_ context.Context, userID int64, slug string, values map[string]string) error {
	if m.sets == nil {
		m.sets = map[int64]requirements.Set{}
	}
	if m.sets[userID] == nil {
		m.sets[userID] = requirements.Set{}
	}
	m.sets[userID][slug] = values
	return nil
}

type memOrders struct {
	list []orders.Order
}

func (m *memOrders) ListByUser(_ context.Context, userID int64, limit, offset int) ([]orders.Order, int, error) {
	var mine []orders.Order
	for _, o := range m.list {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	total := len(mine)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return mine[offset:end], total, nil
}

func (m *memOrders) GetDetailForUser(_ context.Context, userID, orderID int64) (*orders.Detail, error) {
	for _, o := range m.list {
		if o.ID == orderID && o.UserID == userID {
			return &orders.Detail{Order: o, Items: []orders.Item{}}, nil
		}
	}
	return nil, orders.ErrNotFound
}

func (m *memOrders) UpdateStatus(_ context.Context, orderID int64, to string) (*orders.Order, error) {
	for i := range m.list {
		if m.list[i].ID != orderID {
			continue
		}
		if !orders.CanTransition(m.list[i].Status, to) {
			return nil, orders.ErrStatusTransition
		}
		m.list[i].Status = to
		o := m.list[i]
		return &o, nil
	}
	return nil, orders.ErrNotFound
}

func (m *memOrders) CreateFromCart(context.Context, int64, map[string]map[string]string) (*orders.Order, error) {
	return nil, errors.New("not supported in memory")
}

// --- application ---

type memDashboard struct{}

func (memDashboard) GetOverview(context.Context) (*admindashboard.Overview, error) {
	return &admindashboard.Overview{TotalUsers: 3, TotalAdmins: 1, TotalFakeAdmins: 1}, nil
}

type testApp struct {
	*application
	users   *memUsers
	catalog *memCatalog
	carts   *memCarts
	reqs    *memRequirements
	orders  *memOrders
	handler http.Handler
}

const (
	userID      int64 = 1
	fakeAdminID int64 = 2
	adminID     int64 = 3
)

func strPtr(s string) *string { return &s }

func seedCategories() []*products.Category {
	return []*products.Category{
		{ID: 1, Slug: "gadgets", Name: "Gadgets", SubCategories: []*products.SubCategory{}},
		{ID: 2, Slug: "steam-wallet", Name: "Steam Wallet", LogoImg: "steam.png", IsTopup: true, SubCategories: []*products.SubCategory{}},
		{ID: 3, Slug: "mobile-legends", Name: "Mobile Legends", LogoImg: "ml.png", IsTopup: true, SubCategories: []*products.SubCategory{
			{ID: 10, CategoryID: 3, Slug: "a", Name: "A", LogoImg: "a.png"},
			{ID: 11, CategoryID: 3, Slug: "b", Name: "B", LogoImg: "b.png", Position: 1},
		}},
	}
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	u := newMemUsers(
		&users.User{ID: userID, Name: "Ann", Email: "ann@example.com", Role: roles.User},
		&users.User{ID: fakeAdminID, Name: "Fay", Email: "fay@example.com", Role: roles.FakeAdmin},
		&users.User{ID: adminID, Name: "Ada", Email: "ada@example.com", Role: roles.Admin},
	)
	require.NoError(t, u.byID[userID].Password.Set("hunter22"))

	catalog := newMemCatalog(seedCategories()...)
	c := &memCarts{views: map[int64]*carts.CartView{}}
	r := &memRequirements{sets: map[int64]requirements.Set{}}
	o := &memOrders{}

	logger := zap.NewNop().Sugar()
	store := &storage.Container{
		Users:     u,
		Products:  catalog,
		Sales:     storage.Sales{Carts: c, Orders: o, Requirements: r},
		Dashboard: memDashboard{},
	}

	app := &application{
		config: config{
			env:         "test",
			frontendURL: "http://localhost:3000",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "secret"},
			},
		},
		store:         store,
		products:      products.NewService(catalog),
		users:         users.NewService(u),
		shell:         shell.NewLoader(c, r, logger),
		logger:        logger,
		authenticator: auth.NewJWTAuthenticator("access", "refresh", "storefront", "storefront"),
	}

	return &testApp{
		application: app,
		users:       u,
		catalog:     catalog,
		carts:       c,
		reqs:        r,
		orders:      o,
		handler:     app.mount(),
	}
}

func (ta *testApp) token(t *testing.T, id int64) string {
	t.Helper()
	u, err := ta.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	access, _, err := ta.authenticator.GenerateTokens(u.ID, u.Role)
	require.NoError(t, err)
	return access
}

func (ta *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ta.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}
