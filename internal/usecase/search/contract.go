package search

import (
	"context"

	"github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/interpretation"
)

// Catalog is the read-only product store searched by the combiner.
type Catalog interface {
	Find(ctx context.Context, q catalog.Query) ([]catalog.Item, error)
}

// Interpreter turns a query into filters.
type Interpreter interface {
	Interpret(ctx context.Context, query string) (interpretation.Result, error)
}
