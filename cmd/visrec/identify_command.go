package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/awwal-10/visrec-go/internal/app"
	"github.com/awwal-10/visrec-go/internal/client"
	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/history"
	"github.com/awwal-10/visrec-go/internal/ui"
)

func newIdentifyCommand(opts *rootOptions) *cobra.Command {
	var fromURL string

	cmd := &cobra.Command{
		Use:   "identify [file]",
		Short: "Identify the movie in a video clip or image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (fromURL == "") {
				return fmt.Errorf("provide either a file or --url")
			}

			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var view ui.View = ui.NewTermView(out)
			if opts.jsonOut {
				view = ui.NewTermView(io.Discard)
			}

			ctrl, _, cleanup, err := buildController(cfg, log, view)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			var result any
			var runErr error
			if fromURL != "" {
				result, runErr = ctrl.ProcessURL(ctx, fromURL)
			} else {
				result, runErr = ctrl.ProcessFile(ctx, args[0])
			}
			if runErr != nil {
				return fmt.Errorf("%s", ctrl.UserMessage(runErr))
			}
			if opts.jsonOut {
				return printJSON(out, result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromURL, "url", "", "identify a clip hosted at a URL instead of a local file")
	return cmd
}

// buildController assembles the submission pipeline shared by the
// identify and serve commands. The returned cleanup stops toast timers
// and closes the history store.
func buildController(cfg *config.Config, log *slog.Logger, view ui.View) (*app.Controller, *history.Store, func(), error) {
	presenter := ui.NewPresenter(cfg, view)

	var store *history.Store
	if cfg.Features.History {
		var err error
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			// History is a convenience; identification still works.
			log.Warn("history disabled", "error", err)
			store = nil
		}
	}

	ctrl := app.New(cfg, client.New(cfg, nil, log), presenter, store, log)
	cleanup := func() {
		presenter.Close()
		if store != nil {
			store.Close()
		}
	}
	return ctrl, store, cleanup, nil
}
