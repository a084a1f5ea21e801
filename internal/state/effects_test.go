package state

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"okreads/internal/book"
	"okreads/internal/readinglist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetList(ctx context.Context) ([]readinglist.Item, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]readinglist.Item)
	return list, args.Error(1)
}

func (m *mockAPI) AddBook(ctx context.Context, b book.Book) (readinglist.Item, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(readinglist.Item), args.Error(1)
}

func (m *mockAPI) RemoveBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) MarkAsRead(ctx context.Context, item readinglist.Item) (readinglist.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(readinglist.Item), args.Error(1)
}

func (m *mockAPI) SearchBooks(ctx context.Context, term string) ([]book.Book, error) {
	args := m.Called(ctx, term)
	books, _ := args.Get(0).([]book.Book)
	return books, args.Error(1)
}

// recorder collects every action the store reduces.
type recorder struct {
	store *Store
	ch    chan Action
}

func newRecorder(t *testing.T, api API, initial RootState) *recorder {
	t.Helper()
	store := NewStore(initial, discardLogger, NewEffects(api, discardLogger))
	r := &recorder{store: store, ch: make(chan Action, 64)}
	store.Subscribe(func(_ RootState, a Action) { r.ch <- a })
	t.Cleanup(store.Close)
	return r
}

// next waits for the first reduced action of type T.
func next[T Action](t *testing.T, r *recorder) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case a := <-r.ch:
			if got, ok := a.(T); ok {
				return got
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %s", zero.Type())
			return zero
		}
	}
}

func TestEffects_LoadReadingList(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := new(mockAPI)
		list := []readinglist.Item{createReadingListItem("A"), createReadingListItem("B")}
		api.On("GetList", mock.Anything).Return(list, nil)
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(LoadReadingList{}))

		got := next[LoadReadingListSuccess](t, r)
		assert.Equal(t, list, got.List)
		assert.True(t, r.store.State().ReadingList.Loaded)
	})

	t.Run("failure sets error", func(t *testing.T) {
		api := new(mockAPI)
		api.On("GetList", mock.Anything).Return(nil, errors.New("connection refused"))
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(LoadReadingList{}))

		got := next[LoadReadingListError](t, r)
		assert.Equal(t, "connection refused", got.Error)
		assert.Equal(t, "connection refused", r.store.State().ReadingList.Error)
		assert.False(t, r.store.State().ReadingList.Loaded)
	})
}

func TestEffects_AddToReadingList(t *testing.T) {
	t.Run("confirmed keeps optimistic entry", func(t *testing.T) {
		api := new(mockAPI)
		b := createBook("A")
		api.On("AddBook", mock.Anything, b).Return(readinglist.NewItem(b), nil)
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(AddToReadingList{Book: b}))

		got := next[ConfirmedAddToReadingList](t, r)
		assert.Equal(t, b, got.Book)
		assert.Equal(t, []string{"A"}, r.store.State().ReadingList.IDs)
	})

	t.Run("failure rolls back with original payload", func(t *testing.T) {
		api := new(mockAPI)
		b := createBook("A")
		api.On("AddBook", mock.Anything, b).Return(readinglist.Item{}, errors.New("500"))
		start := InitialState()
		r := newRecorder(t, api, start)

		require.NoError(t, r.store.Dispatch(AddToReadingList{Book: b}))

		got := next[FailedAddToReadingList](t, r)
		assert.Equal(t, b, got.Book)
		assert.Equal(t, start, r.store.State())
	})

	t.Run("conflict is treated as confirmed", func(t *testing.T) {
		api := new(mockAPI)
		b := createBook("A")
		api.On("AddBook", mock.Anything, b).Return(readinglist.Item{}, fmt.Errorf("api: %w", readinglist.ErrAlreadyExists))
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(AddToReadingList{Book: b}))

		next[ConfirmedAddToReadingList](t, r)
		assert.Equal(t, []string{"A"}, r.store.State().ReadingList.IDs)
	})
}

func TestEffects_RemoveFromReadingList(t *testing.T) {
	loaded := Reduce(InitialState(), LoadReadingListSuccess{List: []readinglist.Item{createReadingListItem("A")}})

	t.Run("confirmed", func(t *testing.T) {
		api := new(mockAPI)
		api.On("RemoveBook", mock.Anything, "A").Return(nil)
		r := newRecorder(t, api, loaded)

		require.NoError(t, r.store.Dispatch(RemoveFromReadingList{Item: createReadingListItem("A")}))

		next[ConfirmedRemoveFromReadingList](t, r)
		assert.Empty(t, r.store.State().ReadingList.IDs)
	})

	t.Run("failure restores item", func(t *testing.T) {
		api := new(mockAPI)
		api.On("RemoveBook", mock.Anything, "A").Return(errors.New("timeout"))
		r := newRecorder(t, api, loaded)

		item := createReadingListItem("A")
		require.NoError(t, r.store.Dispatch(RemoveFromReadingList{Item: item}))

		got := next[FailedRemoveFromReadingList](t, r)
		assert.Equal(t, item, got.Item)
		assert.Equal(t, item, r.store.State().ReadingList.Entities["A"])
	})
}

func TestEffects_MarkAsRead(t *testing.T) {
	loaded := Reduce(InitialState(), LoadReadingListSuccess{List: []readinglist.Item{createReadingListItem("A")}})

	t.Run("confirmed stores server copy", func(t *testing.T) {
		api := new(mockAPI)
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		server := createReadingListItem("A")
		server.Finished = true
		server.FinishedDate = &at
		api.On("MarkAsRead", mock.Anything, createReadingListItem("A")).Return(server, nil)
		r := newRecorder(t, api, loaded)

		require.NoError(t, r.store.Dispatch(MarkAsRead{Item: createReadingListItem("A")}))

		next[ConfirmedMarkAsRead](t, r)
		assert.Equal(t, server, r.store.State().ReadingList.Entities["A"])
	})

	t.Run("failure leaves item unread", func(t *testing.T) {
		api := new(mockAPI)
		api.On("MarkAsRead", mock.Anything, mock.Anything).Return(readinglist.Item{}, errors.New("404"))
		r := newRecorder(t, api, loaded)

		require.NoError(t, r.store.Dispatch(MarkAsRead{Item: createReadingListItem("A")}))

		got := next[FailedMarkAsRead](t, r)
		assert.Equal(t, createReadingListItem("A"), got.Item)
		assert.False(t, r.store.State().ReadingList.Entities["A"].Finished)
	})
}

func TestEffects_SearchBooks(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := new(mockAPI)
		api.On("SearchBooks", mock.Anything, "dune").Return([]book.Book{createBook("1")}, nil)
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(SearchBooks{Term: "dune"}))

		next[SearchBooksSuccess](t, r)
		assert.Equal(t, []book.Book{createBook("1")}, SearchResults(r.store.State().Books))
	})

	t.Run("failure", func(t *testing.T) {
		api := new(mockAPI)
		api.On("SearchBooks", mock.Anything, "dune").Return(nil, errors.New("bad gateway"))
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(SearchBooks{Term: "dune"}))

		next[SearchBooksFailure](t, r)
		assert.Equal(t, "bad gateway", r.store.State().Books.Error)
	})

	t.Run("superseded search is cancelled", func(t *testing.T) {
		api := new(mockAPI)
		api.On("SearchBooks", mock.Anything, "du").
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.Canceled)
		api.On("SearchBooks", mock.Anything, "dune").Return([]book.Book{createBook("2")}, nil)
		r := newRecorder(t, api, InitialState())

		require.NoError(t, r.store.Dispatch(SearchBooks{Term: "du"}))
		require.NoError(t, r.store.Dispatch(SearchBooks{Term: "dune"}))

		got := next[SearchBooksSuccess](t, r)
		assert.Equal(t, "dune", got.Term)
		assert.Equal(t, []string{"2"}, r.store.State().Books.IDs)
	})
}
