package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"okreads/internal/state"
	"okreads/internal/ui"
)

const shellHelp = `Type to search the catalog. Commands:
  /add N     add result N to your reading list
  /list      show your reading list
  /example   search for an example term
  /clear     clear the results
  /quit      exit
`

// syncWriter serializes writes from the input loop and the store loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// scanLines feeds lines from r until r is exhausted or ctx is done. The
// terminating error is sent on the second channel before lines is closed.
func scanLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive search with debounced input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			store := a.newStore()
			defer store.Close()

			var mu sync.Mutex
			var results ui.Results
			search := ui.NewBookSearch(store, a.cfg.SearchDebounce, a.logger, func(r ui.Results) {
				mu.Lock()
				results = r
				mu.Unlock()

				switch {
				case r.Error != "":
					fmt.Fprintf(out, "search failed: %s\n", r.Error)
				case r.Term != "":
					_ = printBooks(out, r.Books)
				}
			})
			defer search.Close()

			if err := store.Dispatch(state.LoadReadingList{}); err != nil {
				return err
			}
			fmt.Fprint(out, shellHelp)

			lines, scanErr := scanLines(ctx, cmd.InOrStdin())

			for {
				var line string
				var ok bool
				select {
				case <-ctx.Done():
					return nil
				case line, ok = <-lines:
				}
				if !ok {
					if err := <-scanErr; err != nil && ctx.Err() == nil {
						return err
					}
					return nil
				}

				line = strings.TrimSpace(line)
				switch {
				case line == "/quit" || line == "/q":
					return nil
				case line == "/help":
					fmt.Fprint(out, shellHelp)
				case line == "/example":
					search.SearchExample()
				case line == "/clear":
					search.SetTerm("")
				case line == "/list":
					_ = printReadingList(out, state.ReadingListItems(store.State().ReadingList))
				case strings.HasPrefix(line, "/add"):
					n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/add")))
					mu.Lock()
					books := results.Books
					mu.Unlock()
					if err != nil || n < 1 || n > len(books) {
						fmt.Fprintf(out, "no result %q\n", strings.TrimSpace(strings.TrimPrefix(line, "/add")))
						continue
					}
					err = search.AddBook(books[n-1].Book)
					if errors.Is(err, ui.ErrAlreadyListed) {
						fmt.Fprintf(out, "%q is already on your reading list.\n", books[n-1].Title)
						continue
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Adding %q...\n", books[n-1].Title)
				case strings.HasPrefix(line, "/"):
					fmt.Fprintf(out, "unknown command %s\n", line)
				default:
					search.SetTerm(line)
				}
			}
		},
	}
}
