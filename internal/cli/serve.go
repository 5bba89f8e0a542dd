package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"midnight/internal/blog"
	"midnight/internal/render"
	"midnight/internal/web"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().String("addr", a.v.GetString("addr"), "Listen address")
	cmd.Flags().Bool("watch", a.v.GetBool("watch"), "Reload posts when the content directory changes")
	a.bind(cmd.Flags().Lookup("addr"), "addr")
	a.bind(cmd.Flags().Lookup("watch"), "watch")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	store, err := a.loadStore(ctx)
	if err != nil {
		return err
	}
	server, err := web.NewServer(a.cfg, store, render.New(), a.logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              a.cfg.PublicAddr,
		Handler:           server.PublicRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", "addr", a.cfg.PublicAddr, "url", a.cfg.SiteBaseURL, "posts", store.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	if a.cfg.Watch {
		g.Go(func() error {
			err := blog.Watch(ctx, a.cfg.ContentDir, func() error {
				posts, err := a.loadPosts(ctx)
				if err != nil {
					return err
				}
				if err := store.Replace(posts); err != nil {
					return err
				}
				server.ContentReloaded()
				return nil
			}, a.logger)
			if err != nil {
				a.logger.Warn("content watcher stopped", "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}
