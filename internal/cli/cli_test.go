package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"okreads/internal/readinglist"
	"okreads/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, apiURL string, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OKREADS_TIMEOUT", "2s")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append(args, "--api-url", apiURL))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		srv := testutil.NewServer(t, testutil.NewMemoryRepo(), testutil.StaticCatalog{})

		out, err := runCLI(t, srv.URL+"/api", nil, "list")

		require.NoError(t, err)
		assert.Contains(t, out, "Your reading list is empty.")
	})

	t.Run("items", func(t *testing.T) {
		finished := testutil.CreateReadingListItem("B")
		finished.Finished = true
		srv := testutil.NewServer(t, testutil.NewMemoryRepo(testutil.CreateReadingListItem("A"), finished), testutil.StaticCatalog{})

		out, err := runCLI(t, srv.URL+"/api", nil, "list")

		require.NoError(t, err)
		assert.Contains(t, out, "Title A")
		assert.Contains(t, out, "unread")
		assert.Contains(t, out, "finished")
	})

	t.Run("backend down", func(t *testing.T) {
		_, err := runCLI(t, "http://127.0.0.1:1/api", nil, "list")

		assert.Error(t, err)
	})
}

func TestAdd(t *testing.T) {
	repo := testutil.NewMemoryRepo()
	srv := testutil.NewServer(t, repo, testutil.StaticCatalog{})

	out, err := runCLI(t, srv.URL+"/api", nil, "add", "OL1W", "--title", "Dune", "--author", "Frank Herbert")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Dune"`)

	// already listed is still a success
	_, err = runCLI(t, srv.URL+"/api", nil, "add", "OL1W", "--title", "Dune")
	require.NoError(t, err)

	items, _ := repo.List(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Frank Herbert"}, items[0].Authors)

	_, err = runCLI(t, srv.URL+"/api", nil, "add", "OL2W")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	repo := testutil.NewMemoryRepo(testutil.CreateReadingListItem("A"))
	srv := testutil.NewServer(t, repo, testutil.StaticCatalog{})

	out, err := runCLI(t, srv.URL+"/api", nil, "remove", "A")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "Title A"`)

	out, err = runCLI(t, srv.URL+"/api", nil, "remove", "A")
	require.NoError(t, err)
	assert.Contains(t, out, "not on your reading list")
}

func TestFinish(t *testing.T) {
	repo := testutil.NewMemoryRepo(testutil.CreateReadingListItem("A"))
	srv := testutil.NewServer(t, repo, testutil.StaticCatalog{})

	out, err := runCLI(t, srv.URL+"/api", nil, "finish", "A")
	require.NoError(t, err)
	assert.Contains(t, out, `Marked "Title A" as finished`)

	items, _ := repo.List(context.Background())
	assert.True(t, items[0].Finished)

	_, err = runCLI(t, srv.URL+"/api", nil, "finish", "missing")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	repo := testutil.NewMemoryRepo(testutil.CreateReadingListItem("A"))
	srv := testutil.NewServer(t, repo, testutil.StaticCatalog{testutil.CreateBook("A"), testutil.CreateBook("B")})

	out, err := runCLI(t, srv.URL+"/api", nil, "search", "title")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Title A")
	assert.Contains(t, lines[1], "(on list)")
	assert.NotContains(t, lines[2], "(on list)")
}

// lockedBuffer is written by the store loop while the test reads it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestShell(t *testing.T) {
	repo := testutil.NewMemoryRepo()
	srv := testutil.NewServer(t, repo, testutil.StaticCatalog{testutil.CreateBook("A"), testutil.CreateBook("B")})
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OKREADS_SEARCH_DEBOUNCE", "10ms")

	stdin, input := io.Pipe()
	var out lockedBuffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(stdin)
	cmd.SetArgs([]string{"shell", "--api-url", srv.URL + "/api"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(context.Background()) }()

	_, err := io.WriteString(input, "title\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "Title B") }, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(input, "/add 2\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		items, _ := repo.List(context.Background())
		return len(items) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(input, "/add 2\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"Title B" is already on your reading list.`)
	}, 2*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(input, "/quit\n")
	require.NoError(t, err)
	require.NoError(t, <-done)
	_ = input.Close()

	items, _ := repo.List(context.Background())
	assert.Equal(t, []readinglist.Item{testutil.CreateReadingListItem("B")}, items)
}

func TestScanLines_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines, errc := scanLines(ctx, strings.NewReader("first\nsecond\nthird\n"))

	assert.Equal(t, "first", <-lines)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("reader goroutine did not stop after cancel")
	}
	_, ok := <-lines
	assert.False(t, ok)
}

func TestScanLines_ReadsToEOF(t *testing.T) {
	lines, errc := scanLines(context.Background(), strings.NewReader("a\nb\n"))

	var got []string
	for l := range lines {
		got = append(got, l)
	}
	assert.Equal(t, []string{"a", "b"}, got)
	assert.NoError(t, <-errc)
}
