// Package requirements stores the per-category values a user must provide
// before buying topup products, such as an in-game player id.
package requirements

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/validation"
	"storefront/internal/infra/dbx"
)

var QueryTimeoutDuration = time.Second * 5

// Set maps a category slug to the values the user entered for it.
type Set map[string]map[string]string

type Store interface {
	ListByUser(ctx context.Context, userID int64) (Set, error)
	Upsert(ctx context.Context, userID int64, categorySlug string, values map[string]string) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

// ListByUser never returns a nil set.
func (r *Repository) ListByUser(ctx context.Context, userID int64) (Set, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
SELECT category_slug, fields
FROM requirements
WHERE user_id = $1
ORDER BY category_slug`, userID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	out := Set{}
	for rows.Next() {
		var (
			slug string
			raw  []byte
		)
		if err := rows.Scan(&slug, &raw); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		values := map[string]string{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &values); err != nil {
				return nil, fmt.Errorf("requirement %q: %w", slug, err)
			}
		}
		out[slug] = values
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("requirements rows: %w", err)
	}
	return out, nil
}

func (r *Repository) Upsert(ctx context.Context, userID int64, categorySlug string, values map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal requirement: %w", err)
	}

	_, err = r.db.Exec(ctx, `
INSERT INTO requirements (user_id, category_slug, fields)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, category_slug)
DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()`,
		userID, categorySlug, raw)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return validation.Errorf("unknown category %q", categorySlug)
		}
		return fmt.Errorf("upsert requirement: %w", err)
	}
	return nil
}

// Normalize trims keys and values and drops blank entries. An input with no
// usable values is a validation error.
func Normalize(values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil, validation.Errorf("Please provide at least one requirement value")
	}
	return out, nil
}
