package cli

import (
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"midnight/internal/render"
	"midnight/internal/tui"
)

func (a *app) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the blog in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.loadPosts(cmd.Context())
			if err != nil {
				return err
			}
			model := tui.New(posts, a.cfg.Site, render.New(), rand.Uint64())
			_, err = tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}
