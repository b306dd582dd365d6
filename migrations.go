package content

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-content/internal/catalog"
)

// RegisterModels registers the catalog's many-to-many join models with bun.
// Module.Init does this automatically; the helper exists for hosts that
// manage the database handle themselves.
func RegisterModels(db *bun.DB) {
	catalog.RegisterModels(db)
}

// CreateTables creates the catalog tables when they do not exist yet.
func CreateTables(ctx context.Context, db *bun.DB) error {
	return catalog.CreateTables(ctx, db)
}
