package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/domain/validation"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// batchWorkers bounds the concurrent category lookups of a batch create.
const batchWorkers = 8

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the products matching f. The title search runs after the
// store query.
func (s *Service) List(ctx context.Context, f Filter) (*ListResult, error) {
	found, err := s.store.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]*Product, 0, len(found))
	for _, p := range found {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return &ListResult{Products: out, Length: len(out)}, nil
}

// Create validates one payload, derives its image and stores it for the
// creating user.
func (s *Service) Create(ctx context.Context, userID int64, in Payload) (*Product, error) {
	lookup := newCategoryLookup(s.store)
	p, err := s.resolve(ctx, lookup, userID, in)
	if err != nil {
		return nil, err
	}

	created, err := s.store.InsertProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	created.SubCategory = p.SubCategory
	return created, nil
}

// CreateBatch resolves every payload concurrently, then inserts them in one
// transaction. Either all products are created or none. An empty batch
// creates nothing and is not an error.
func (s *Service) CreateBatch(ctx context.Context, userID int64, in []Payload) ([]*Product, error) {
	if len(in) == 0 {
		return []*Product{}, nil
	}

	lookup := newCategoryLookup(s.store)
	resolved := make([]*Product, len(in))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i := range in {
		i := i
		g.Go(func() error {
			p, err := s.resolve(gctx, lookup, userID, in[i])
			if err != nil {
				if ve, ok := validation.As(err); ok {
					return validation.Errorf("product %d: %s", i, ve.Message)
				}
				return fmt.Errorf("product %d: %w", i, err)
			}
			resolved[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	created, err := s.store.InsertProducts(ctx, resolved)
	if err != nil {
		return nil, err
	}
	for i := range created {
		created[i].SubCategory = resolved[i].SubCategory
	}
	return created, nil
}

// resolve turns a payload into a product ready to insert.
func (s *Service) resolve(ctx context.Context, lookup *categoryLookup, userID int64, in Payload) (*Product, error) {
	if in.Title == nil || in.Price == nil {
		return nil, validation.Errorf("Please provide title, price")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, validation.Errorf("Please provide category")
	}

	category, err := lookup.category(ctx, in.Category)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, validation.Errorf("category %q not found", in.Category)
		}
		return nil, err
	}

	p := &Product{
		Title:      *in.Title,
		Price:      *in.Price,
		Discount:   in.Discount,
		Img:        in.Img,
		CategoryID: category.ID,
		UserID:     userID,
		Attributes: in.Attributes,
	}

	if category.IsTopup {
		if len(category.SubCategories) > 0 {
			if in.SubCategory == "" {
				return nil, validation.Errorf("Please provide subCategory for this product")
			}
			sc := category.SubCategory(in.SubCategory)
			if sc == nil {
				return nil, validation.Errorf("subCategory %q does not belong to category %q", in.SubCategory, category.Slug)
			}
			p.Img = sc.LogoImg
		} else {
			p.Img = category.LogoImg
		}
	}

	if in.SubCategory != "" {
		sc := category.SubCategory(in.SubCategory)
		if sc == nil {
			sc, err = s.store.GetSubCategoryBySlug(ctx, in.SubCategory)
			if err != nil {
				if errors.Is(err, ErrSubCategoryNotFound) {
					return nil, validation.Errorf("subCategory %q not found", in.SubCategory)
				}
				return nil, err
			}
		}
		id := sc.ID
		p.SubCategoryID = &id
		p.SubCategory = sc
	}

	return p, nil
}

// categoryLookup memoizes category reads for the lifetime of one request so
// a batch of products in the same category hits the store once.
type categoryLookup struct {
	store Store
	group singleflight.Group

	mu    sync.Mutex
	cache map[string]*Category
}

func newCategoryLookup(store Store) *categoryLookup {
	return &categoryLookup{store: store, cache: map[string]*Category{}}
}

func (l *categoryLookup) category(ctx context.Context, slug string) (*Category, error) {
	l.mu.Lock()
	c, ok := l.cache[slug]
	l.mu.Unlock()
	if ok {
		return c, nil
	}

	v, err, _ := l.group.Do(slug, func() (any, error) {
		c, err := l.store.GetCategoryBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[slug] = c
		l.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Category), nil
}
