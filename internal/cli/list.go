package cli

import (
	"github.com/spf13/cobra"

	"okreads/internal/state"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the reading list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			store := a.newStore()
			defer store.Close()

			s, err := loadList(ctx, store)
			if err != nil {
				return err
			}
			return printReadingList(cmd.OutOrStdout(), state.ReadingListItems(s.ReadingList))
		},
	}
}
