package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notebook/internal/notes"
	"notebook/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().String("listen", "", "listen address (default \":8080\")")
	cmd.Flags().Bool("watch", false, "reload the dir store when files change")
	_ = a.v.BindPFlag("listen_addr", cmd.Flags().Lookup("listen"))
	_ = a.v.BindPFlag("store.watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	store, err := notes.Open(ctx, a.cfg.Store, a.logger.Named("store"))
	if err != nil {
		return fmt.Errorf("open note store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("close note store", zap.Error(err))
		}
	}()

	handler, err := web.NewHandler(a.cfg, store, a.logger.Named("http"))
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	listener, err := net.Listen("tcp", a.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.ListenAddr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	if watcher, ok := store.(notes.Watcher); ok && a.cfg.Store.Watch {
		group.Go(func() error {
			a.logger.Info("watching note store for changes")
			return watcher.Watch(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	a.logger.Info("notebook listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("store", a.cfg.Store.Driver))
	if a.onListen != nil {
		a.onListen(listener.Addr())
	}

	err = group.Wait()
	a.logger.Info("notebook stopped")
	return err
}
