package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("sub-category not found")
	QueryTimeoutDuration   = time.Second * 5
)

// Store is the data access abstraction for the catalog.
// Implemented by Repository.
type Store interface {
	// Categories
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	GetSubCategoryBySlug(ctx context.Context, slug string) (*SubCategory, error)
	SetCategoryLogo(ctx context.Context, slug, logoURL string) error
	SetSubCategoryLogo(ctx context.Context, slug, logoURL string) error

	// Products
	ListProducts(ctx context.Context, f Filter) ([]*Product, error)
	InsertProduct(ctx context.Context, p *Product) (*Product, error)
	// InsertProducts stores all products or none of them.
	InsertProducts(ctx context.Context, ps []*Product) ([]*Product, error)
}

// DB is what the repository needs from *pgxpool.Pool.
type DB interface {
	dbx.Querier
	dbx.TxBeginner
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// ------------------------------------
// Categories
// ------------------------------------

func (r *Repository) ListCategories(ctx context.Context) ([]*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, slug, name, COALESCE(logo_img, ''), is_topup, created_at, updated_at
		FROM categories
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var (
		list  []*Category
		byID  = map[int64]*Category{}
		order []int64
	)
	for rows.Next() {
		c := &Category{SubCategories: []*SubCategory{}}
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.LogoImg, &c.IsTopup, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
		byID[c.ID] = c
		order = append(order, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	if len(list) == 0 {
		return []*Category{}, nil
	}

	subs, err := r.listSubCategories(ctx, order)
	if err != nil {
		return nil, err
	}
	for _, sc := range subs {
		if c, ok := byID[sc.CategoryID]; ok {
			c.SubCategories = append(c.SubCategories, sc)
		}
	}
	return list, nil
}

func (r *Repository) listSubCategories(ctx context.Context, categoryIDs []int64) ([]*SubCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, slug, name, COALESCE(logo_img, ''), position
		FROM sub_categories
		WHERE category_id = ANY($1)
		ORDER BY category_id, position ASC, id ASC
	`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories: %w", err)
	}
	defer rows.Close()

	var out []*SubCategory
	for rows.Next() {
		sc := &SubCategory{}
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Slug, &sc.Name, &sc.LogoImg, &sc.Position); err != nil {
			return nil, fmt.Errorf("scan sub-category: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// GetCategoryBySlug returns the category with its ordered sub-categories.
func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c := &Category{SubCategories: []*SubCategory{}}
	err := r.db.QueryRow(ctx, `
		SELECT id, slug, name, COALESCE(logo_img, ''), is_topup, created_at, updated_at
		FROM categories
		WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Slug, &c.Name, &c.LogoImg, &c.IsTopup, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by slug: %w", err)
	}

	subs, err := r.listSubCategories(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	c.SubCategories = append(c.SubCategories, subs...)
	return c, nil
}

func (r *Repository) GetSubCategoryBySlug(ctx context.Context, slug string) (*SubCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	sc := &SubCategory{}
	err := r.db.QueryRow(ctx, `
		SELECT id, category_id, slug, name, COALESCE(logo_img, ''), position
		FROM sub_categories
		WHERE slug = $1
	`, slug).Scan(&sc.ID, &sc.CategoryID, &sc.Slug, &sc.Name, &sc.LogoImg, &sc.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubCategoryNotFound
		}
		return nil, fmt.Errorf("get sub-category by slug: %w", err)
	}
	return sc, nil
}

func (r *Repository) SetCategoryLogo(ctx context.Context, slug, logoURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE categories SET logo_img = $1, updated_at = NOW() WHERE slug = $2`, logoURL, slug)
	if err != nil {
		return fmt.Errorf("set category logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) SetSubCategoryLogo(ctx context.Context, slug, logoURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE sub_categories SET logo_img = $1 WHERE slug = $2`, logoURL, slug)
	if err != nil {
		return fmt.Errorf("set sub-category logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubCategoryNotFound
	}
	return nil
}

// ------------------------------------
// Products
// ------------------------------------

// ListProducts applies the category, price and discount parts of f. Related
// rows come from LEFT JOINs and are only attached when f.Include asks for them.
func (r *Repository) ListProducts(ctx context.Context, f Filter) ([]*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT
			p.id, p.title, p.price, p.discount, COALESCE(p.img, ''), p.category_id,
			p.sub_category_id, p.user_id, p.attributes, p.created_at, p.updated_at,
			c.id, c.slug, c.name, COALESCE(c.logo_img, ''), c.is_topup, c.created_at, c.updated_at,
			sc.id, sc.category_id, sc.slug, sc.name, COALESCE(sc.logo_img, ''), sc.position,
			u.id, u.name, u.image
		FROM products p
		JOIN categories c           ON c.id = p.category_id
		LEFT JOIN sub_categories sc ON sc.id = p.sub_category_id
		LEFT JOIN users u           ON u.id = p.user_id
		WHERE ($1 = '' OR c.slug = $1)
		  AND ($2::numeric IS NULL OR p.price >= $2)
		  AND ($3::numeric IS NULL OR p.price <= $3)
		  AND (NOT $4::boolean OR p.discount > 0)
		ORDER BY p.id ASC
	`
	rows, err := r.db.Query(ctx, query, f.Category, f.From, f.To, f.DiscountOnly)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*Product, 0)
	for rows.Next() {
		var (
			p       Product
			attrs   []byte
			c       Category
			scID    *int64
			scCatID *int64
			scSlug  *string
			scName  *string
			scLogo  *string
			scPos   *int
			uID     *int64
			uName   *string
			uImage  *string
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Price, &p.Discount, &p.Img, &p.CategoryID,
			&p.SubCategoryID, &p.UserID, &attrs, &p.CreatedAt, &p.UpdatedAt,
			&c.ID, &c.Slug, &c.Name, &c.LogoImg, &c.IsTopup, &c.CreatedAt, &c.UpdatedAt,
			&scID, &scCatID, &scSlug, &scName, &scLogo, &scPos,
			&uID, &uName, &uImage,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if err := decodeAttributes(attrs, &p); err != nil {
			return nil, err
		}

		if f.Include.Category {
			c.SubCategories = []*SubCategory{}
			p.Category = &c
		}
		if f.Include.SubCategory && scID != nil {
			p.SubCategory = &SubCategory{
				ID:         *scID,
				CategoryID: deref(scCatID),
				Slug:       deref(scSlug),
				Name:       deref(scName),
				LogoImg:    deref(scLogo),
				Position:   deref(scPos),
			}
		}
		if f.Include.User && uID != nil {
			p.User = &Creator{ID: *uID, Name: deref(uName), Image: uImage}
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return list, nil
}

func (r *Repository) InsertProduct(ctx context.Context, p *Product) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return insertProduct(ctx, r.db, p)
}

func (r *Repository) InsertProducts(ctx context.Context, ps []*Product) ([]*Product, error) {
	out := make([]*Product, 0, len(ps))
	err := dbx.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for i, p := range ps {
			created, err := insertProduct(ctx, tx, p)
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			out = append(out, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func insertProduct(ctx context.Context, q dbx.Querier, p *Product) (*Product, error) {
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrJSON, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}

	query := `
		INSERT INTO products (title, price, discount, img, category_id, sub_category_id, user_id, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		p.Title, p.Price, p.Discount, p.Img, p.CategoryID, p.SubCategoryID, p.UserID, attrJSON,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("create product %q: %w", p.Title, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func decodeAttributes(raw []byte, p *Product) error {
	if len(raw) == 0 {
		return nil
	}
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return fmt.Errorf("unmarshal attributes: %w", err)
	}
	if len(attrs) > 0 {
		p.Attributes = attrs
	}
	return nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
