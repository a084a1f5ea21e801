// Package testutil holds fixtures and in-memory backends for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"okreads/internal/book"
	apphttp "okreads/internal/http"
	"okreads/internal/readinglist"
)

var DiscardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// CreateBook returns a deterministic book for id.
func CreateBook(id string) book.Book {
	return book.Book{
		ID:          id,
		Title:       "Title " + id,
		Authors:     []string{"Author " + id},
		Description: "Description " + id,
	}
}

// CreateReadingListItem returns an unfinished item for CreateBook(id).
func CreateReadingListItem(id string) readinglist.Item {
	return readinglist.NewItem(CreateBook(id))
}

// MemoryRepo is a readinglist.Repository kept in memory.
type MemoryRepo struct {
	mu    sync.Mutex
	items []readinglist.Item
}

func NewMemoryRepo(items ...readinglist.Item) *MemoryRepo {
	return &MemoryRepo{items: append([]readinglist.Item(nil), items...)}
}

func (m *MemoryRepo) List(context.Context) ([]readinglist.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]readinglist.Item{}, m.items...), nil
}

func (m *MemoryRepo) Insert(_ context.Context, item readinglist.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.BookID == item.BookID {
			return readinglist.ErrAlreadyExists
		}
	}
	m.items = append(m.items, item)
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, bookID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.BookID == bookID {
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryRepo) MarkFinished(_ context.Context, bookID string, at time.Time) (readinglist.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.BookID == bookID {
			it.Finished = true
			it.FinishedDate = &at
			m.items[i] = it
			return it, nil
		}
	}
	return readinglist.Item{}, readinglist.ErrNotFound
}

// StaticCatalog answers every search with the same books.
type StaticCatalog []book.Book

func (c StaticCatalog) Search(_ context.Context, _ string, limit int) ([]book.Book, error) {
	if limit > 0 && len(c) > limit {
		return c[:limit], nil
	}
	return c, nil
}

// NewServer starts the full API router over repo and catalog.
func NewServer(t testing.TB, repo readinglist.Repository, catalog book.Catalog) *httptest.Server {
	t.Helper()
	router := apphttp.NewRouter(apphttp.Config{}, apphttp.Deps{
		ReadingList: readinglist.NewHTTPHandler(readinglist.NewService(repo)),
		Books:       book.NewHTTPHandler(book.NewService(catalog, nil, 20, DiscardLogger)),
		Logger:      DiscardLogger,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		router.Close()
	})
	return srv
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
