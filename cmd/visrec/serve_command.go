package main

import (
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/awwal-10/visrec-go/internal/ui"
	"github.com/awwal-10/visrec-go/internal/web"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local upload page in front of the recognition service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Serve.Bind = bind
			}

			// The gateway renders outcomes per request; the shared
			// presenter view stays silent.
			ctrl, store, cleanup, err := buildController(cfg, log, ui.NewTermView(io.Discard))
			if err != nil {
				return err
			}
			defer cleanup()

			router := web.NewRouter(&web.App{Cfg: cfg, Ctrl: ctrl, History: store})

			log.Info("gateway listening", "bind", cfg.Serve.Bind, "api", cfg.API.BaseURL)
			return http.ListenAndServe(cfg.Serve.Bind, router)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "listen address (overrides config)")
	return cmd
}
