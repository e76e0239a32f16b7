// Command visrec identifies movies and TV shows through a Visual
// Recognition API deployment.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
	jsonOut    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "visrec",
		Short:         "Identify movies and TV shows from video clips and frames",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print raw JSON instead of formatted output")

	root.AddCommand(
		newIdentifyCommand(opts),
		newHealthCommand(opts),
		newMediaCommand(opts),
		newHistoryCommand(opts),
		newServeCommand(opts),
	)
	return root
}

// load builds the config and logger shared by every command.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	log, err := logging.New(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
