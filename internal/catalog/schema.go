package catalog

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// RegisterModels wires the many-to-many join models into bun's model
// registry. Callers must invoke this before any query that loads the Series
// or Tags relations.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*EntrySeries)(nil), (*EntryTag)(nil))
}

// CreateTables provisions the catalog schema. Tables are created in
// dependency order and the call is idempotent, so embedding applications can
// run it on every start.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Entry)(nil),
		(*Series)(nil),
		(*Tag)(nil),
		(*EntrySeries)(nil),
		(*EntryTag)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("catalog: create table %T: %w", model, err)
		}
	}
	return nil
}
