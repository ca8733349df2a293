package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rikjimue/folio"
	"github.com/rikjimue/folio/content"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr, contentDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if contentDir != "" {
				cfg.ContentDir = contentDir
			}

			store := content.NewStore(cfg.ContentDir, content.WithLogger(log.Logger))
			if err := store.Check(); err != nil {
				log.Warn().Err(err).Msg("content directory has problems; affected posts are skipped")
			}

			app := folio.New(cfg, folio.WithPosts(store), folio.WithLogger(log.Logger))
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
	cmd.Flags().StringVar(&contentDir, "content", "", "posts directory, overrides the config file")
	return cmd
}
