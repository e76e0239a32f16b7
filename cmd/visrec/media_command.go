package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/awwal-10/visrec-go/internal/client"
	"github.com/awwal-10/visrec-go/internal/ui"
)

func newMediaCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "media",
		Short: "List the fingerprinted media the service can recognize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			c := client.New(cfg, nil, log)
			list, err := c.Media(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return printJSON(out, list)
			}

			rows := make([][]string, 0, len(list.Media))
			for _, item := range list.Media {
				year := ""
				if item.Year != nil {
					year = strconv.Itoa(*item.Year)
				}
				duration := ""
				if item.Duration != nil {
					duration = fmt.Sprintf("%.0fs", *item.Duration)
				}
				rows = append(rows, []string{
					strconv.Itoa(item.ID),
					item.Title,
					year,
					duration,
					strconv.Itoa(item.Fingerprints),
				})
			}
			ui.NewTermView(out).RenderMediaTable(rows)
			fmt.Fprintf(out, "%d items\n", list.Total)
			return nil
		},
	}
}
