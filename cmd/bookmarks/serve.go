package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/cache"
	"github.com/joestump/bookmarks-api/internal/handler"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/redis"
	"github.com/joestump/bookmarks-api/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			var bookmarks store.BookmarkStoreIface = store.NewBookmarkStore(database)
			if cfg.Redis.Addr != "" {
				rdb, err := redis.New(redis.ConnectOptions{
					Addr:           cfg.Redis.Addr,
					Password:       cfg.Redis.Password,
					DB:             cfg.Redis.DB,
					ConnectTimeout: cfg.Redis.ConnectTimeout,
				}, log)
				if err != nil {
					return err
				}
				defer func() { _ = rdb.Close() }()
				bookmarks = cache.NewCachedStore(bookmarks, cache.NewBookmarkCache(rdb, cfg.CacheTTL), log)
			} else {
				log.Info("redis not configured, bookmark cache disabled")
			}

			router := handler.NewRouter(handler.Deps{
				Bookmarks:      bookmarks,
				Logger:         log,
				DB:             database,
				APIToken:       cfg.APIToken,
				Production:     cfg.Production(),
				AllowedOrigins: cfg.HTTP.AllowedOrigins,
				StartTime:      time.Now(),
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
				MaxHeaderBytes:    1 << 20,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", logger.String("addr", cfg.HTTP.Addr), logger.String("env", cfg.Env))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down", logger.Duration("timeout", cfg.HTTP.ShutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
