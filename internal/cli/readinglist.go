package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"okreads/internal/book"
	"okreads/internal/readinglist"
	"okreads/internal/state"
)

func newAddCmd(a *app) *cobra.Command {
	var b book.Book
	var authors []string

	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add a book to the reading list",
		Example: `  okreads add OL893415W --title Dune --author "Frank Herbert"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b.ID = args[0]
			b.Authors = authors
			if strings.TrimSpace(b.Title) == "" {
				return fmt.Errorf("--title is required")
			}

			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			store := a.newStore()
			defer store.Close()

			_, res, err := await(ctx, store, state.AddToReadingList{Book: b}, func(act state.Action) bool {
				switch act.(type) {
				case state.ConfirmedAddToReadingList, state.FailedAddToReadingList:
					return true
				}
				return false
			})
			if err != nil {
				return err
			}
			if _, ok := res.(state.FailedAddToReadingList); ok {
				return fmt.Errorf("could not add %s to the reading list", b.ID)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %q to your reading list.\n", b.Title)
			return err
		},
	}

	cmd.Flags().StringVar(&b.Title, "title", "", "Book title")
	cmd.Flags().StringSliceVar(&authors, "author", nil, "Book author (repeatable)")
	cmd.Flags().StringVar(&b.Publisher, "publisher", "", "Publisher")
	cmd.Flags().StringVar(&b.PublishedDate, "published", "", "Publication date")
	return cmd
}

// findItem loads the list and returns the entry for id.
func findItem(ctx context.Context, store *state.Store, id string) (readinglist.Item, bool, error) {
	s, err := loadList(ctx, store)
	if err != nil {
		return readinglist.Item{}, false, err
	}
	it, ok := s.ReadingList.Entities[id]
	return it, ok, nil
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <book-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a book from the reading list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			store := a.newStore()
			defer store.Close()

			item, ok, err := findItem(ctx, store, args[0])
			if err != nil {
				return err
			}
			if !ok {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is not on your reading list.\n", args[0])
				return err
			}

			_, res, err := await(ctx, store, state.RemoveFromReadingList{Item: item}, func(act state.Action) bool {
				switch act.(type) {
				case state.ConfirmedRemoveFromReadingList, state.FailedRemoveFromReadingList:
					return true
				}
				return false
			})
			if err != nil {
				return err
			}
			if _, ok := res.(state.FailedRemoveFromReadingList); ok {
				return fmt.Errorf("could not remove %s from the reading list", item.BookID)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from your reading list.\n", item.Title)
			return err
		},
	}
}

func newFinishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "finish <book-id>",
		Short: "Mark a reading list book as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			store := a.newStore()
			defer store.Close()

			item, ok, err := findItem(ctx, store, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not on your reading list", args[0])
			}

			s, res, err := await(ctx, store, state.MarkAsRead{Item: item}, func(act state.Action) bool {
				switch act.(type) {
				case state.ConfirmedMarkAsRead, state.FailedMarkAsRead:
					return true
				}
				return false
			})
			if err != nil {
				return err
			}
			if _, ok := res.(state.FailedMarkAsRead); ok {
				return fmt.Errorf("could not mark %s as finished", item.BookID)
			}
			finished := s.ReadingList.Entities[item.BookID]
			when := ""
			if finished.FinishedDate != nil {
				when = " on " + finished.FinishedDate.Local().Format("1/2/2006")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as finished%s.\n", finished.Title, when)
			return err
		},
	}
}
