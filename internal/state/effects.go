package state

import (
	"context"
	"errors"
	"log/slog"

	"okreads/internal/book"
	"okreads/internal/readinglist"
)

// API is the backend surface the effects call.
type API interface {
	GetList(ctx context.Context) ([]readinglist.Item, error)
	AddBook(ctx context.Context, b book.Book) (readinglist.Item, error)
	RemoveBook(ctx context.Context, id string) error
	MarkAsRead(ctx context.Context, item readinglist.Item) (readinglist.Item, error)
	SearchBooks(ctx context.Context, term string) ([]book.Book, error)
}

// Effects turns intent actions into backend calls and dispatches their
// outcome. Failures carry the original payload so the reducer can undo
// the optimistic change.
type Effects struct {
	api    API
	logger *slog.Logger

	// only touched from Handle, which runs on the store loop
	cancelSearch context.CancelFunc
}

func NewEffects(api API, logger *slog.Logger) *Effects {
	return &Effects{api: api, logger: logger}
}

func (e *Effects) Handle(a Action, _ RootState, sc Scope) {
	switch a := a.(type) {
	case LoadReadingList:
		sc.Go(func(ctx context.Context) Action {
			list, err := e.api.GetList(ctx)
			if err != nil {
				e.logger.Warn("load reading list failed", "err", err)
				return LoadReadingListError{Error: err.Error()}
			}
			return LoadReadingListSuccess{List: list}
		})

	case AddToReadingList:
		sc.Go(func(ctx context.Context) Action {
			_, err := e.api.AddBook(ctx, a.Book)
			// A conflict means the backend already has it, which is the state we want.
			if err != nil && !errors.Is(err, readinglist.ErrAlreadyExists) {
				e.logger.Warn("add to reading list failed", "book_id", a.Book.ID, "err", err)
				return FailedAddToReadingList{Book: a.Book}
			}
			return ConfirmedAddToReadingList{Book: a.Book}
		})

	case RemoveFromReadingList:
		sc.Go(func(ctx context.Context) Action {
			if err := e.api.RemoveBook(ctx, a.Item.BookID); err != nil {
				e.logger.Warn("remove from reading list failed", "book_id", a.Item.BookID, "err", err)
				return FailedRemoveFromReadingList{Item: a.Item}
			}
			return ConfirmedRemoveFromReadingList{Item: a.Item}
		})

	case MarkAsRead:
		sc.Go(func(ctx context.Context) Action {
			updated, err := e.api.MarkAsRead(ctx, a.Item)
			if err != nil {
				e.logger.Warn("mark as read failed", "book_id", a.Item.BookID, "err", err)
				return FailedMarkAsRead{Item: a.Item}
			}
			if updated.BookID == "" {
				updated = a.Item
			}
			return ConfirmedMarkAsRead{Item: updated}
		})

	case SearchBooks:
		e.stopSearch()
		if a.Term == "" {
			sc.Go(func(context.Context) Action {
				return SearchBooksSuccess{Term: a.Term, Books: []book.Book{}}
			})
			return
		}
		ctx, cancel := context.WithCancel(sc.Context())
		e.cancelSearch = cancel
		sc.Go(func(context.Context) Action {
			defer cancel()
			books, err := e.api.SearchBooks(ctx, a.Term)
			if ctx.Err() != nil {
				// superseded or store closed
				return nil
			}
			if err != nil {
				e.logger.Warn("search books failed", "term", a.Term, "err", err)
				return SearchBooksFailure{Term: a.Term, Error: err.Error()}
			}
			return SearchBooksSuccess{Term: a.Term, Books: books}
		})

	case ClearSearch:
		e.stopSearch()
	}
}

func (e *Effects) stopSearch() {
	if e.cancelSearch != nil {
		e.cancelSearch()
		e.cancelSearch = nil
	}
}
