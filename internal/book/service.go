package book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service provides catalog search backed by an optional cache.
type Service struct {
	catalog Catalog
	cache   Cache
	limit   int
	logger  *slog.Logger
}

// NewService creates a new book service. cache may be nil.
func NewService(catalog Catalog, cache Cache, limit int, logger *slog.Logger) *Service {
	if limit <= 0 {
		limit = 20
	}
	return &Service{catalog: catalog, cache: cache, limit: limit, logger: logger}
}

// NormalizeTerm trims and lower-cases a search term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// Search returns catalog books matching term. An empty term yields no results.
func (s *Service) Search(ctx context.Context, term string) ([]Book, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return []Book{}, nil
	}

	if s.cache != nil {
		books, ok, err := s.cache.Get(ctx, term)
		if err != nil {
			s.logger.Warn("search cache read failed", "term", term, "err", err)
		} else if ok {
			return books, nil
		}
	}

	books, err := s.catalog.Search(ctx, term, s.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if books == nil {
		books = []Book{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, term, books); err != nil {
			s.logger.Warn("search cache write failed", "term", term, "err", err)
		}
	}
	return books, nil
}
