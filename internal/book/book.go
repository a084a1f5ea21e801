package book

import (
	"errors"
)

// ErrUpstream is returned when the catalog provider cannot serve a search.
var ErrUpstream = errors.New("catalog unavailable")

// Book is a catalog item. Books are immutable once fetched.
type Book struct {
	ID            string   `json:"id" validate:"required,max=128"`
	Title         string   `json:"title" validate:"required,max=512"`
	Authors       []string `json:"authors,omitempty"`
	Description   string   `json:"description,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty" validate:"omitempty,url"`
}
