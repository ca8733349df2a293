package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rikjimue/folio/newpost"
)

type newFlags struct {
	title   string
	excerpt string
	tags    string
	author  string
	dir     string
	publish bool
	force   bool
}

func newNewCmd(flags *globalFlags) *cobra.Command {
	nf := &newFlags{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new post",
		Long:  "Create a new Markdown post in the content directory. Without --title the fields are asked for interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			dir := nf.dir
			if dir == "" {
				dir = cfg.ContentDir
			}
			author := nf.author
			if author == "" {
				author = cfg.Author
			}
			base := newpost.NewDraft(nf.title, time.Now())
			base.Author = author

			out := cmd.OutOrStdout()
			if nf.title != "" {
				base.Excerpt = nf.excerpt
				base.Tags = newpost.ParseTags(nf.tags)
				base.Published = nf.publish
				return writePost(out, dir, base, nf.force)
			}

			m, err := tea.NewProgram(newpost.NewPrompt(dir, base), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out)).Run()
			if err != nil {
				return fmt.Errorf("prompt: %w", err)
			}
			d, overwrite, err := m.(newpost.Prompt).Result()
			if errors.Is(err, newpost.ErrCancelled) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			return writePost(out, dir, d, overwrite || nf.force)
		},
	}
	cmd.Flags().StringVar(&nf.title, "title", "", "post title; skips the interactive prompt")
	cmd.Flags().StringVar(&nf.excerpt, "excerpt", "", "brief excerpt")
	cmd.Flags().StringVar(&nf.tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&nf.author, "author", "", "author name (default from config)")
	cmd.Flags().StringVar(&nf.dir, "dir", "", "posts directory (default from config)")
	cmd.Flags().BoolVar(&nf.publish, "publish", false, "publish immediately")
	cmd.Flags().BoolVar(&nf.force, "force", false, "overwrite an existing post")
	return cmd
}

func writePost(out io.Writer, dir string, d newpost.Draft, overwrite bool) error {
	path, err := newpost.Write(dir, d, overwrite)
	if errors.Is(err, newpost.ErrExists) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return err
	}

	status := "Draft"
	if d.Published {
		status = "Published"
	}
	fmt.Fprintln(out, "Post created successfully!")
	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "URL: /blog/%s\n", d.Slug())
	fmt.Fprintf(out, "Status: %s\n", status)
	if !d.Published {
		fmt.Fprintln(out, "\nTo publish, set \"published: true\" in the frontmatter.")
	}
	return nil
}
