package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

// Generates type-safe query helpers for every persisted model.
func main() {
	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	gen.ApplyBasic(model.All()...)

	gen.Execute()
}
