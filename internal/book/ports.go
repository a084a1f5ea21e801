package book

import (
	"context"
)

// Catalog searches an external book catalog.
type Catalog interface {
	Search(ctx context.Context, term string, limit int) ([]Book, error)
}

// Cache stores search results by normalized term.
type Cache interface {
	Get(ctx context.Context, term string) ([]Book, bool, error)
	Set(ctx context.Context, term string, books []Book) error
}
