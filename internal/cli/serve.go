package cli

import (
	"context"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lingqianapp/lingqian/internal/server"
	"github.com/lingqianapp/lingqian/pkg/cache"
	"github.com/lingqianapp/lingqian/pkg/card"
	"github.com/lingqianapp/lingqian/pkg/config"
	"github.com/lingqianapp/lingqian/pkg/history"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath string // TOML config file path
	addr       string // listen address override
}

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address override")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	store, err := openStore(cfg.Card.SignDataDir)
	if err != nil {
		return err
	}

	cardCache, err := buildCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}

	hist, err := buildHistory(ctx, cfg.History, logger)
	if err != nil {
		return err
	}

	srv := server.New(store,
		server.WithRenderer(card.New(card.WithQRTarget(cfg.Card.QRTarget))),
		server.WithCache(cache.Instrument(cardCache, "card"), cfg.Cache.TTL.Duration),
		server.WithKeyer(buildKeyer(cfg.Cache)),
		server.WithHistory(hist),
		server.WithLogger(logger),
	)

	// Stop serving when the command context is cancelled (SIGINT/SIGTERM).
	done := make(chan error, 1)
	go func() { done <- srv.Start(cfg.Server.Addr) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildCache selects the cache backend from config: Redis when an address
// is set, a file cache when a directory is set, otherwise no caching.
func buildCache(ctx context.Context, cfg config.CacheConfig, logger *charmlog.Logger) (cache.Cache, error) {
	switch {
	case cfg.RedisAddr != "":
		logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(connectCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case cfg.Dir != "":
		logger.Debug("using file cache", "dir", cfg.Dir)
		return cache.NewFileCache(cfg.Dir)
	default:
		logger.Debug("caching disabled")
		return cache.NewNullCache(), nil
	}
}

// buildKeyer scopes cache keys when a namespace is configured.
func buildKeyer(cfg config.CacheConfig) cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if cfg.Namespace != "" {
		return cache.NewScopedKeyer(keyer, cfg.Namespace)
	}
	return keyer
}

// buildHistory selects the history backend: MongoDB when a URI is set,
// otherwise in-memory.
func buildHistory(ctx context.Context, cfg config.HistoryConfig, logger *charmlog.Logger) (history.Store, error) {
	if cfg.MongoURI == "" {
		logger.Debug("using in-memory history")
		return history.NewMemoryStore(0), nil
	}
	logger.Debug("using mongo history", "database", cfg.Database)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return history.NewMongoStore(connectCtx, cfg.MongoURI, cfg.Database)
}
