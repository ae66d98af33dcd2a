package db

import (
	"context"
	_ "embed"
	"fmt"

	"storefront/internal/infra/dbx"
)

//go:embed schema.sql
var schema string

// Migrate applies schema.sql. Every statement is idempotent, so it is safe on
// each start.
func Migrate(ctx context.Context, q dbx.Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
