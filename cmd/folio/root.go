package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rikjimue/folio"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:          "folio",
		Short:        "A Markdown blog server",
		Long:         "folio serves a blog from a directory of Markdown posts: pages, a JSON API, RSS and JSON feeds, and a sitemap.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file (default ./folio.yaml, then $XDG_CONFIG_HOME/folio/config.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level, overrides the config file")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "log output format: console or json")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newNewCmd(flags))
	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

// load reads the configuration and sets up the global logger from it.
func (f *globalFlags) load() (folio.SiteConfig, error) {
	cfg, err := folio.LoadConfig(f.configPath)
	if err != nil {
		return folio.SiteConfig{}, err
	}

	level := cfg.LogLevel
	if f.logLevel != "" {
		level = f.logLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return folio.SiteConfig{}, fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	switch f.logFormat {
	case "json":
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	default:
		return folio.SiteConfig{}, fmt.Errorf("unknown log format %q (valid: console, json)", f.logFormat)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}
