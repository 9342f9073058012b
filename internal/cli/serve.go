package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeloop/pkg/config"
	"github.com/matzehuels/pipeloop/pkg/server"
	"github.com/matzehuels/pipeloop/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the solver over HTTP:

  POST /v1/solve      grid text in the body
  GET  /v1/runs/{id}  a stored run
  GET  /healthz       liveness probe

Runs are kept in memory or in MongoDB depending on [server] store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := st.Close(closeCtx); err != nil {
					logger.Warn("failed to close run store", "err", err)
				}
			}()

			logger.Info("starting server", "addr", addr, "store", cfg.Server.Store, "cache", cfg.Cache.Backend)
			return server.New(runner, st, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// newStore builds the run store selected in cfg.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Server.Store != config.StoreMongo {
		return store.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	st, err := store.NewMongoStore(connectCtx, store.MongoConfig{
		URI:      cfg.Server.MongoURI,
		Database: cfg.Server.MongoDatabase,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	return st, nil
}
