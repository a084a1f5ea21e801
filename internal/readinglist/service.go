package readinglist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"okreads/internal/book"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetList returns the whole reading list in insertion order.
func (s *Service) GetList(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reading list: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// AddBook appends b to the reading list as an unfinished item.
func (s *Service) AddBook(ctx context.Context, b book.Book) (Item, error) {
	if strings.TrimSpace(b.ID) == "" || strings.TrimSpace(b.Title) == "" {
		return Item{}, fmt.Errorf("%w: id and title are required", ErrInvalidBook)
	}
	item := NewItem(b)
	if err := s.repo.Insert(ctx, item); err != nil {
		return Item{}, fmt.Errorf("add book %s: %w", b.ID, err)
	}
	return item, nil
}

// RemoveBook deletes a book from the list; absent ids are ignored.
func (s *Service) RemoveBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove book %s: %w", id, err)
	}
	return nil
}

// MarkAsRead flags the item as finished at the current server time.
// item is the client's copy; its id must match when present.
func (s *Service) MarkAsRead(ctx context.Context, id string, item Item) (Item, error) {
	if item.BookID != "" && item.BookID != id {
		return Item{}, fmt.Errorf("%w: body book_id %q does not match %q", ErrInvalidBook, item.BookID, id)
	}
	updated, err := s.repo.MarkFinished(ctx, id, s.now().UTC())
	if err != nil {
		return Item{}, fmt.Errorf("mark %s as read: %w", id, err)
	}
	return updated, nil
}
