// Package cli implements the okreads command line client.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"okreads/internal/client"
	"okreads/internal/config"
	"okreads/internal/platform/logging"
	"okreads/internal/state"

	"github.com/spf13/cobra"
)

type app struct {
	cfg    *config.Client
	logger *slog.Logger
	api    state.API
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	var apiURL string

	cmd := &cobra.Command{
		Use:   "okreads",
		Short: "Search books and manage your reading list",
		Long: `okreads talks to the okreads API to search the Open Library catalog
and keep a personal reading list.

Configuration is read from the environment and from .env / .env.local.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			a.cfg = cfg
			a.logger = logging.Setup(cfg.LogLevel, cmd.ErrOrStderr())
			if a.api == nil {
				a.api = client.New(cfg.APIURL, cfg.Timeout)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides OKREADS_API_URL)")

	cmd.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newFinishCmd(a),
		newShellCmd(a),
	)
	return cmd
}

func (a *app) newStore() *state.Store {
	return state.NewStore(state.InitialState(), a.logger, state.NewEffects(a.api, a.logger))
}

func (a *app) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	// one request plus headroom for the store round trip
	return context.WithTimeout(ctx, a.cfg.Timeout+time.Second)
}

// await dispatches intent and blocks until an action accepted by done has
// been reduced, returning the state right after it.
func await(ctx context.Context, store *state.Store, intent state.Action, done func(state.Action) bool) (state.RootState, state.Action, error) {
	type outcome struct {
		s state.RootState
		a state.Action
	}
	ch := make(chan outcome, 1)
	unsubscribe := store.Subscribe(func(s state.RootState, a state.Action) {
		if !done(a) {
			return
		}
		select {
		case ch <- outcome{s: s, a: a}:
		default:
		}
	})
	defer unsubscribe()

	if err := store.Dispatch(intent); err != nil {
		return state.RootState{}, nil, err
	}
	select {
	case o := <-ch:
		return o.s, o.a, nil
	case <-ctx.Done():
		return state.RootState{}, nil, fmt.Errorf("%s: %w", intent.Type(), ctx.Err())
	}
}

// loadList fetches the reading list into store.
func loadList(ctx context.Context, store *state.Store) (state.RootState, error) {
	s, a, err := await(ctx, store, state.LoadReadingList{}, func(a state.Action) bool {
		switch a.(type) {
		case state.LoadReadingListSuccess, state.LoadReadingListError:
			return true
		}
		return false
	})
	if err != nil {
		return s, err
	}
	if failed, ok := a.(state.LoadReadingListError); ok {
		return s, fmt.Errorf("load reading list: %s", failed.Error)
	}
	return s, nil
}
