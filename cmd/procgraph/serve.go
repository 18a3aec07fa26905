package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/procgraph"
	"github.com/meikuraledutech/procgraph/bolt"
	"github.com/meikuraledutech/procgraph/internal/config"
	"github.com/meikuraledutech/procgraph/internal/logging"
	"github.com/meikuraledutech/procgraph/postgres"
	"github.com/meikuraledutech/procgraph/redis"
	"github.com/meikuraledutech/procgraph/server"
	"github.com/meikuraledutech/procgraph/xmlfile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve documents and resolved graphs over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		defer log.Sync()

		store, closer, err := openStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer closer.Close()

		app := server.New(store, log, server.NewMetrics())
		log.Info("listening", zap.String("addr", cfg.Listen), zap.String("store", cfg.Store.Driver))
		return app.Listen(cfg.Listen)
	},
}

func init() {
	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noopCloser = closerFunc(func() error { return nil })

// openStore wires the configured store driver.
func openStore(ctx context.Context, cfg config.StoreConfig) (procgraph.Store, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return xmlfile.New(cfg.File.Dir), noopCloser, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect: %w", err)
		}
		s := postgres.New(pool)
		if err := s.CreateSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("schema: %w", err)
		}
		return s, closerFunc(func() error { pool.Close(); return nil }), nil

	case config.DriverRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return s, s, nil

	case config.DriverBolt:
		s, err := bolt.Open(cfg.Bolt.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
