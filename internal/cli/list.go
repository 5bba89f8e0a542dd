package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"midnight/internal/blog"
)

func (a *app) lsCommand() *cobra.Command {
	var (
		query string
		tag   string
		page  int
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.loadPosts(cmd.Context())
			if err != nil {
				return err
			}

			state := blog.NewState()
			state.SetQuery(query)
			state.SetTag(tag)
			state.SetPage(page)
			return printPage(cmd.OutOrStdout(), state, state.View(posts))
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only posts whose title or content contains this text")
	cmd.Flags().StringVarP(&tag, "tag", "t", blog.AllTags, "Only posts with this tag")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	return cmd
}

func (a *app) tagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with their post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.loadPosts(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range blog.Tags(posts) {
				fmt.Fprintf(w, "%s\t%d\n", t, len(blog.Filter(posts, "", t)))
			}
			return w.Flush()
		},
	}
}

func printPage(out io.Writer, state blog.State, view blog.Snapshot) error {
	if view.Filtered == 0 {
		_, err := fmt.Fprintf(out, "nothing here matches %q.\n", state.Query)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tDATE\tTAG\tTITLE")
	for _, p := range view.Posts {
		date := p.Date
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, date, p.Tag, p.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "page %d of %d, %d posts\n", view.CurrentPage, view.TotalPages, view.Filtered)
	return err
}
