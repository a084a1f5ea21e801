package readinglist

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=readinglist

// Repository defines the contract for reading list storage.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	// Insert returns ErrAlreadyExists when the book is already listed.
	Insert(ctx context.Context, item Item) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, bookID string) error
	// MarkFinished returns ErrNotFound for unknown ids.
	MarkFinished(ctx context.Context, bookID string, at time.Time) (Item, error)
}
