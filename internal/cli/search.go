package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"okreads/internal/state"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "Search the catalog",
		Example: `  okreads search dune
  okreads search frank herbert`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(strings.Join(args, " "))
			if term == "" {
				return errors.New("search term is required")
			}

			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			store := a.newStore()
			defer store.Close()

			// the list is only needed to flag results; a failure there is not fatal
			if _, err := loadList(ctx, store); err != nil {
				a.logger.Warn("reading list unavailable", "err", err)
			}

			s, res, err := await(ctx, store, state.SearchBooks{Term: term}, func(act state.Action) bool {
				switch act.(type) {
				case state.SearchBooksSuccess, state.SearchBooksFailure:
					return true
				}
				return false
			})
			if err != nil {
				return err
			}
			if failed, ok := res.(state.SearchBooksFailure); ok {
				return errors.New("search failed: " + failed.Error)
			}
			return printBooks(cmd.OutOrStdout(), state.AllBooks(s))
		},
	}
}
