package readinglist

import (
	"errors"
	"time"

	"okreads/internal/book"
)

var (
	ErrNotFound      = errors.New("reading list item not found")
	ErrAlreadyExists = errors.New("book already on reading list")
	ErrInvalidBook   = errors.New("invalid book")
)

// Item is a book on the reading list. BookID is its identity.
type Item struct {
	BookID        string     `json:"book_id"`
	Title         string     `json:"title"`
	Authors       []string   `json:"authors,omitempty"`
	Description   string     `json:"description,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishedDate string     `json:"published_date,omitempty"`
	CoverURL      string     `json:"cover_url,omitempty"`
	Finished      bool       `json:"finished"`
	FinishedDate  *time.Time `json:"finished_date,omitempty"`
}

// NewItem derives an unfinished reading list item from a catalog book.
func NewItem(b book.Book) Item {
	return Item{
		BookID:        b.ID,
		Title:         b.Title,
		Authors:       b.Authors,
		Description:   b.Description,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		CoverURL:      b.CoverURL,
	}
}

// Book returns the catalog view of the item.
func (i Item) Book() book.Book {
	return book.Book{
		ID:            i.BookID,
		Title:         i.Title,
		Authors:       i.Authors,
		Description:   i.Description,
		Publisher:     i.Publisher,
		PublishedDate: i.PublishedDate,
		CoverURL:      i.CoverURL,
	}
}
