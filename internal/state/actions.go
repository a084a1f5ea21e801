package state

import (
	"okreads/internal/book"
	"okreads/internal/readinglist"
)

// Action is an immutable intent or outcome fed to the reducer.
type Action interface {
	Type() string
}

const (
	TypeLoadReadingList        = "[Reading List] Load list"
	TypeLoadReadingListSuccess = "[Reading List] Load list success"
	TypeLoadReadingListError   = "[Reading List] Load list error"

	TypeAddToReadingList          = "[Reading List] Add to list"
	TypeConfirmedAddToReadingList = "[Reading List] Confirmed add to list"
	TypeFailedAddToReadingList    = "[Reading List] Failed add to list"

	TypeRemoveFromReadingList          = "[Reading List] Remove from list"
	TypeConfirmedRemoveFromReadingList = "[Reading List] Confirmed remove from list"
	TypeFailedRemoveFromReadingList    = "[Reading List] Failed remove from list"

	TypeMarkAsRead          = "[Reading List] Mark as read"
	TypeConfirmedMarkAsRead = "[Reading List] Confirmed mark as read"
	TypeFailedMarkAsRead    = "[Reading List] Failed mark as read"

	TypeSearchBooks        = "[Book Search] Search"
	TypeSearchBooksSuccess = "[Book Search] Search success"
	TypeSearchBooksFailure = "[Book Search] Search failure"
	TypeClearSearch        = "[Book Search] Clear search"
)

type LoadReadingList struct{}

type LoadReadingListSuccess struct {
	List []readinglist.Item `json:"list"`
}

type LoadReadingListError struct {
	Error string `json:"error"`
}

type AddToReadingList struct {
	Book book.Book `json:"book"`
}

type ConfirmedAddToReadingList struct {
	Book book.Book `json:"book"`
}

// FailedAddToReadingList carries the same book as the AddToReadingList it undoes.
type FailedAddToReadingList struct {
	Book book.Book `json:"book"`
}

type RemoveFromReadingList struct {
	Item readinglist.Item `json:"item"`
}

type ConfirmedRemoveFromReadingList struct {
	Item readinglist.Item `json:"item"`
}

// FailedRemoveFromReadingList carries the removed item so it can be restored.
type FailedRemoveFromReadingList struct {
	Item readinglist.Item `json:"item"`
}

type MarkAsRead struct {
	Item readinglist.Item `json:"item"`
}

type ConfirmedMarkAsRead struct {
	Item readinglist.Item `json:"item"`
}

type FailedMarkAsRead struct {
	Item readinglist.Item `json:"item"`
}

type SearchBooks struct {
	Term string `json:"term"`
}

// SearchBooksSuccess and SearchBooksFailure echo the term they answer so
// superseded responses can be told apart.
type SearchBooksSuccess struct {
	Term  string      `json:"term"`
	Books []book.Book `json:"books"`
}

type SearchBooksFailure struct {
	Term  string `json:"term"`
	Error string `json:"error"`
}

type ClearSearch struct{}

func (LoadReadingList) Type() string        { return TypeLoadReadingList }
func (LoadReadingListSuccess) Type() string { return TypeLoadReadingListSuccess }
func (LoadReadingListError) Type() string   { return TypeLoadReadingListError }

func (AddToReadingList) Type() string          { return TypeAddToReadingList }
func (ConfirmedAddToReadingList) Type() string { return TypeConfirmedAddToReadingList }
func (FailedAddToReadingList) Type() string    { return TypeFailedAddToReadingList }

func (RemoveFromReadingList) Type() string          { return TypeRemoveFromReadingList }
func (ConfirmedRemoveFromReadingList) Type() string { return TypeConfirmedRemoveFromReadingList }
func (FailedRemoveFromReadingList) Type() string    { return TypeFailedRemoveFromReadingList }

func (MarkAsRead) Type() string          { return TypeMarkAsRead }
func (ConfirmedMarkAsRead) Type() string { return TypeConfirmedMarkAsRead }
func (FailedMarkAsRead) Type() string    { return TypeFailedMarkAsRead }

func (SearchBooks) Type() string        { return TypeSearchBooks }
func (SearchBooksSuccess) Type() string { return TypeSearchBooksSuccess }
func (SearchBooksFailure) Type() string { return TypeSearchBooksFailure }
func (ClearSearch) Type() string        { return TypeClearSearch }
