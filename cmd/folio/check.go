package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rikjimue/folio/content"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every post in the content directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			store := content.NewStore(cfg.ContentDir, content.WithLogger(log.Logger))
			if err := store.Check(); err != nil {
				return err
			}
			posts := store.ListPosts()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d published posts, %d tags, no problems found\n",
				store.Dir(), len(posts), len(content.Tags(posts)))
			return nil
		},
	}
}
