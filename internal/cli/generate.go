package cli

import (
	"github.com/spf13/cobra"

	"midnight/internal/render"
	"midnight/internal/web"
)

func (a *app) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Export the blog as static files",
		Long:  `Render every list page, tag page, post, the feed and the sitemap into a directory a static host can serve.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			server, err := web.NewServer(a.cfg, store, render.New(), a.logger)
			if err != nil {
				return err
			}
			n, err := server.Export(cmd.Context(), a.cfg.OutputDir)
			if err != nil {
				return err
			}
			a.logger.Info("site generated", "dir", a.cfg.OutputDir, "pages", n, "base_url", a.cfg.SiteBaseURL)
			return nil
		},
	}

	cmd.Flags().String("out", a.v.GetString("output_dir"), "Output directory")
	cmd.Flags().String("base-url", a.v.GetString("base_url"), "Absolute site URL used in the feed and sitemap")
	a.bind(cmd.Flags().Lookup("out"), "output_dir")
	a.bind(cmd.Flags().Lookup("base-url"), "base_url")
	return cmd
}
