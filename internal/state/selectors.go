package state

import (
	"okreads/internal/book"
	"okreads/internal/readinglist"
)

// ReadingListBook is a search result annotated with its list membership.
type ReadingListBook struct {
	book.Book
	IsAdded bool `json:"is_added"`
}

func ReadingListItems(s ReadingListState) []readinglist.Item {
	return itemAdapter.All(s.EntityState)
}

func TotalUnread(s ReadingListState) int {
	n := 0
	for _, it := range s.Entities {
		if !it.Finished {
			n++
		}
	}
	return n
}

func SearchResults(s BooksState) []book.Book {
	return bookAdapter.All(s.EntityState)
}

// AllBooks returns the current search results in order, flagging the ones
// already on the reading list.
func AllBooks(root RootState) []ReadingListBook {
	books := SearchResults(root.Books)
	out := make([]ReadingListBook, 0, len(books))
	for _, b := range books {
		_, added := root.ReadingList.Entities[b.ID]
		out = append(out, ReadingListBook{Book: b, IsAdded: added})
	}
	return out
}
