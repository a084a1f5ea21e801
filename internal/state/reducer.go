package state

import (
	"okreads/internal/book"
	"okreads/internal/readinglist"
)

var (
	itemAdapter = NewAdapter(func(it readinglist.Item) string { return it.BookID })
	bookAdapter = NewAdapter(func(b book.Book) string { return b.ID })
)

type ReadingListState struct {
	EntityState[readinglist.Item]
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

type BooksState struct {
	EntityState[book.Book]
	Term   string `json:"term"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

// RootState is everything a Store holds.
type RootState struct {
	ReadingList ReadingListState `json:"reading_list"`
	Books       BooksState       `json:"books"`
}

func InitialReadingListState() ReadingListState {
	return ReadingListState{EntityState: itemAdapter.Initial()}
}

func InitialBooksState() BooksState {
	return BooksState{EntityState: bookAdapter.Initial()}
}

func InitialState() RootState {
	return RootState{
		ReadingList: InitialReadingListState(),
		Books:       InitialBooksState(),
	}
}

// ReduceReadingList applies a to s. Actions it does not handle return s as is.
func ReduceReadingList(s ReadingListState, a Action) ReadingListState {
	switch a := a.(type) {
	case LoadReadingListSuccess:
		s.EntityState = itemAdapter.SetAll(s.EntityState, a.List)
		s.Loaded = true
		s.Error = ""
	case LoadReadingListError:
		s.Error = a.Error
	case AddToReadingList:
		s.EntityState = itemAdapter.AddOne(s.EntityState, readinglist.NewItem(a.Book))
	case FailedAddToReadingList:
		s.EntityState = itemAdapter.RemoveOne(s.EntityState, a.Book.ID)
	case RemoveFromReadingList:
		s.EntityState = itemAdapter.RemoveOne(s.EntityState, a.Item.BookID)
	case FailedRemoveFromReadingList:
		s.EntityState = itemAdapter.AddOne(s.EntityState, a.Item)
	case ConfirmedMarkAsRead:
		item := a.Item
		item.Finished = true
		s.EntityState = itemAdapter.UpsertOne(s.EntityState, item)
		s.Error = ""
	case FailedMarkAsRead:
		s.EntityState = itemAdapter.UpdateOne(s.EntityState, a.Item.BookID, func(it readinglist.Item) readinglist.Item {
			it.Finished = false
			return it
		})
	case ConfirmedAddToReadingList, ConfirmedRemoveFromReadingList:
		s.Error = ""
	}
	return s
}

// ReduceBooks applies a to the search results. Results for a term other
// than the current one are stale and ignored.
func ReduceBooks(s BooksState, a Action) BooksState {
	switch a := a.(type) {
	case SearchBooks:
		s.Term = a.Term
		s.Loaded = false
		s.Error = ""
	case SearchBooksSuccess:
		if a.Term != s.Term {
			return s
		}
		s.EntityState = bookAdapter.SetAll(s.EntityState, a.Books)
		s.Loaded = true
		s.Error = ""
	case SearchBooksFailure:
		if a.Term != s.Term {
			return s
		}
		s.Error = a.Error
	case ClearSearch:
		return InitialBooksState()
	}
	return s
}

// Reduce is the root reducer.
func Reduce(s RootState, a Action) RootState {
	s.ReadingList = ReduceReadingList(s.ReadingList, a)
	s.Books = ReduceBooks(s.Books, a)
	return s
}
