package state

import (
	"testing"
	"time"

	"okreads/internal/book"
	"okreads/internal/readinglist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalAction_Envelope(t *testing.T) {
	data, err := MarshalAction(SearchBooks{Term: "dune"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"[Book Search] Search","payload":{"term":"dune"}}`, string(data))
}

func TestUnmarshalAction_RoundTrip(t *testing.T) {
	at := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	finished := createReadingListItem("A")
	finished.Finished = true
	finished.FinishedDate = &at

	actions := []Action{
		LoadReadingList{},
		LoadReadingListSuccess{List: []readinglist.Item{createReadingListItem("A")}},
		AddToReadingList{Book: createBook("B")},
		FailedRemoveFromReadingList{Item: finished},
		ConfirmedMarkAsRead{Item: finished},
		SearchBooksSuccess{Term: "x", Books: []book.Book{createBook("C")}},
		ClearSearch{},
	}
	for _, a := range actions {
		t.Run(a.Type(), func(t *testing.T) {
			data, err := MarshalAction(a)
			require.NoError(t, err)

			got, err := UnmarshalAction(data)

			require.NoError(t, err)
			assert.Equal(t, a, got)
		})
	}
}

func TestUnmarshalAction_MissingPayload(t *testing.T) {
	got, err := UnmarshalAction([]byte(`{"type":"[Reading List] Load list"}`))

	require.NoError(t, err)
	assert.Equal(t, LoadReadingList{}, got)
}

func TestUnmarshalAction_Errors(t *testing.T) {
	_, err := UnmarshalAction([]byte(`{"type":"[Nope] Nope","payload":{}}`))
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = UnmarshalAction([]byte(`not json`))
	assert.Error(t, err)

	_, err = UnmarshalAction([]byte(`{"type":"[Book Search] Search","payload":{"term":5}}`))
	assert.Error(t, err)
}
