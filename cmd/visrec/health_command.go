package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awwal-10/visrec-go/internal/client"
)

func newHealthCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the recognition service and its database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			c := client.New(cfg, nil, log)
			status, err := c.Health(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return printJSON(out, status)
			}
			fmt.Fprintf(out, "status:       %s\n", status.Status)
			fmt.Fprintf(out, "version:      %s\n", status.Version)
			fmt.Fprintf(out, "media items:  %d\n", status.MediaItems)
			fmt.Fprintf(out, "fingerprints: %d\n", status.Fingerprints)
			return nil
		},
	}
}
