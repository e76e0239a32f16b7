package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awwal-10/visrec-go/internal/history"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past submissions and their outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			if !cfg.Features.History {
				return fmt.Errorf("history is disabled in the configuration")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if clear {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			}

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return printJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No submissions yet")
				return nil
			}
			for _, e := range entries {
				outcome := e.Error
				if e.Matched {
					outcome = fmt.Sprintf("%s (%.1f%%, %s)", e.Title, e.Confidence*100, e.MatchType)
				}
				fmt.Fprintf(out, "%s  %-24s %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Filename, outcome)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	cmd.Flags().BoolVar(&clear, "clear", false, "delete all history entries")
	return cmd
}
