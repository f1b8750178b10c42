package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hydrotools/penstock/internal/server"
	netio "github.com/hydrotools/penstock/pkg/io"
	"github.com/hydrotools/penstock/pkg/network"
	"github.com/hydrotools/penstock/pkg/project"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noStorage bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the network editing API over HTTP",
		Long:  `Starts an HTTP server exposing the network editing API and diagram endpoints. When a file argument is given the initial network is loaded from it. Project persistence uses the backend configured in config.toml (file, redis or mongo).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := WithLogger(cmd.Context(), c.Logger)

			store := network.NewStore()
			if len(args) == 1 {
				file, err := netio.ImportJSON(args[0])
				if err != nil {
					return fmt.Errorf("loading network: %w", err)
				}
				store.Load(file.Snapshot(), file.ProjectName)
			}

			var projects project.Store
			if !noStorage {
				var err error
				projects, err = c.newProjectStore(ctx)
				if err != nil {
					return fmt.Errorf("initializing project storage: %w", err)
				}
				defer projects.Close()
			}

			if addr == "" {
				addr = c.Config.Server.Addr
			}

			srv := server.New(store, projects, c.Logger)
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr, "storage", c.storageBackendName(noStorage))
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := httpSrv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutting down: %w", err)
				}
				c.Logger.Info("server stopped")
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noStorage, "no-storage", false, "disable project persistence endpoints")

	return cmd
}

// newProjectStore builds the project store for the configured backend.
func (c *CLI) newProjectStore(ctx context.Context) (project.Store, error) {
	s := c.Config.Storage
	logger := LoggerFromContext(ctx)
	logger.Debug("initializing project storage", "backend", c.storageBackendName(false))
	switch s.Backend {
	case "", "file":
		return project.NewFileStore(s.Dir)
	case "redis":
		return project.NewRedisStore(ctx, project.RedisConfig{
			Addr: s.RedisAddr,
			DB:   s.RedisDB,
		})
	case "mongo":
		return project.NewMongoStore(ctx, project.MongoConfig{
			URI:      s.MongoURI,
			Database: s.MongoDB,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, redis or mongo)", s.Backend)
	}
}

func (c *CLI) storageBackendName(disabled bool) string {
	if disabled {
		return "disabled"
	}
	if c.Config.Storage.Backend == "" {
		return "file"
	}
	return c.Config.Storage.Backend
}
