// Package cli wires configuration, content loading and the surfaces into the
// midnight command.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"midnight/internal/blog"
	"midnight/internal/config"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand creates the midnight command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:          "midnight",
		Short:        "midnight.thoughts blog",
		Long:         `Serve, export or browse a small blog of markdown posts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Path to a config file (default ./midnight.yaml)")
	flags.String("content", a.v.GetString("content_dir"), "Directory of markdown posts")
	flags.String("posts-json", a.v.GetString("posts_json"), "JSON records file used when the content directory has no posts")
	flags.String("log-level", a.v.GetString("log_level"), "Log level: debug, info, warn, error")
	a.bind(flags.Lookup("content"), "content_dir")
	a.bind(flags.Lookup("posts-json"), "posts_json")
	a.bind(flags.Lookup("log-level"), "log_level")

	rootCmd.AddCommand(
		a.serveCommand(),
		a.generateCommand(),
		a.browseCommand(),
		a.lsCommand(),
		a.tagsCommand(),
	)
	return rootCmd
}

// initialize resolves the configuration and sets up logging before any
// subcommand runs.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) loadPosts(ctx context.Context) ([]blog.Post, error) {
	posts, err := a.cfg.Corpus().Load(ctx, blog.NewLoader(a.logger))
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	a.logger.Debug("posts loaded", "count", len(posts))
	return posts, nil
}

func (a *app) loadStore(ctx context.Context) (*blog.MemoryStore, error) {
	posts, err := a.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	return blog.NewMemoryStore(posts)
}
