// Package ui holds the terminal-facing book search component.
package ui

import (
	"errors"
	"log/slog"
	"time"

	"okreads/internal/book"
	"okreads/internal/state"
)

const exampleTerm = "javascript"

// ErrAlreadyListed is returned by AddBook for a book already on the reading list.
var ErrAlreadyListed = errors.New("book already on the reading list")

// Results is what the search view renders.
type Results struct {
	Term  string
	Books []state.ReadingListBook
	Error string
}

// BookSearch connects a search input to a store. Settled terms dispatch
// SearchBooks; an empty term clears the results.
type BookSearch struct {
	store       *state.Store
	debouncer   *Debouncer[string]
	unsubscribe func()
	logger      *slog.Logger
}

// NewBookSearch subscribes to store; onChange, if set, is called on the
// store loop whenever the rendered results may have changed.
func NewBookSearch(store *state.Store, debounce time.Duration, logger *slog.Logger, onChange func(Results)) *BookSearch {
	bs := &BookSearch{store: store, logger: logger}
	bs.debouncer = NewDebouncer(debounce, bs.search)
	bs.unsubscribe = store.Subscribe(func(s state.RootState, a state.Action) {
		if onChange == nil || !affectsResults(a) {
			return
		}
		onChange(Results{Term: s.Books.Term, Books: state.AllBooks(s), Error: s.Books.Error})
	})
	return bs
}

func affectsResults(a state.Action) bool {
	switch a.(type) {
	case state.SearchBooksSuccess, state.SearchBooksFailure, state.ClearSearch,
		state.LoadReadingListSuccess,
		state.AddToReadingList, state.FailedAddToReadingList,
		state.RemoveFromReadingList, state.FailedRemoveFromReadingList:
		return true
	}
	return false
}

func (bs *BookSearch) search(term string) {
	var a state.Action = state.ClearSearch{}
	if term != "" {
		a = state.SearchBooks{Term: term}
	}
	if err := bs.store.Dispatch(a); err != nil {
		bs.logger.Debug("search dispatch dropped", "term", term, "err", err)
	}
}

// SetTerm records the current input value.
func (bs *BookSearch) SetTerm(term string) {
	bs.debouncer.Push(term)
}

// SearchExample fills the input with a sample term.
func (bs *BookSearch) SearchExample() {
	bs.SetTerm(exampleTerm)
}

// AddBook dispatches AddToReadingList unless b is already listed. A listed
// book is left untouched so a failed add cannot roll back an existing entry.
func (bs *BookSearch) AddBook(b book.Book) error {
	if _, ok := bs.store.State().ReadingList.Entities[b.ID]; ok {
		return ErrAlreadyListed
	}
	return bs.store.Dispatch(state.AddToReadingList{Book: b})
}

func (bs *BookSearch) Books() []state.ReadingListBook {
	return state.AllBooks(bs.store.State())
}

func (bs *BookSearch) Error() string {
	return bs.store.State().Books.Error
}

// Close stops the debouncer and unsubscribes from the store.
func (bs *BookSearch) Close() {
	bs.debouncer.Stop()
	bs.unsubscribe()
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01", "2006"}

// FormatDate renders a published date as M/D/YYYY, or "" if it cannot be parsed.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("1/2/2006")
		}
	}
	return ""
}
