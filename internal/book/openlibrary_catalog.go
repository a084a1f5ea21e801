package book

import (
	"context"
	"strconv"
	"strings"

	"okreads/internal/platform/openlibrary"
)

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, term string, limit int) (*openlibrary.SearchResponse, error)
}

// OpenLibraryCatalog adapts the Open Library search API to Catalog.
type OpenLibraryCatalog struct {
	client OpenLibraryClient
}

func NewOpenLibraryCatalog(client OpenLibraryClient) *OpenLibraryCatalog {
	return &OpenLibraryCatalog{client: client}
}

func (c *OpenLibraryCatalog) Search(ctx context.Context, term string, limit int) ([]Book, error) {
	res, err := c.client.SearchBooks(ctx, term, limit)
	if err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(res.Docs))
	seen := make(map[string]bool, len(res.Docs))
	for _, doc := range res.Docs {
		// doc.Key is like "/works/OL45804W"
		id := strings.TrimPrefix(doc.Key, "/works/")
		if id == "" || doc.Title == "" || seen[id] {
			continue
		}
		seen[id] = true
		books = append(books, fromSearchDoc(id, doc))
	}
	return books, nil
}

func fromSearchDoc(id string, doc openlibrary.SearchDoc) Book {
	b := Book{
		ID:       id,
		Title:    doc.Title,
		Authors:  doc.AuthorNames,
		CoverURL: openlibrary.CoverURL(doc.CoverID),
	}
	if len(doc.Publishers) > 0 {
		b.Publisher = doc.Publishers[0]
	}
	if len(doc.FirstSentence) > 0 {
		b.Description = doc.FirstSentence[0]
	}
	if doc.FirstPublishYear > 0 {
		b.PublishedDate = strconv.Itoa(doc.FirstPublishYear)
	}
	return b
}
