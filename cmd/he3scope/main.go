package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"he3scope/internal/chain"
	"he3scope/internal/collector"
	"he3scope/internal/config"
	"he3scope/internal/indexer"
	"he3scope/internal/model"
	"he3scope/internal/ranking"
	"he3scope/internal/registry"
	"he3scope/internal/scoring"
	"he3scope/internal/storage"
	"he3scope/internal/storage/postgres"
	"he3scope/internal/weights"
)

func main() {
	root := &cobra.Command{
		Use:          "he3scope",
		Short:        "He3 game progression scanner",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	progressionCmd := &cobra.Command{
		Use:   "progression",
		Short: "Score every rostered agent",
		RunE:  runProgression,
	}
	addCommonFlags(progressionCmd)
	root.AddCommand(progressionCmd)

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "Build the multi-factor leaderboard",
		RunE:  runRank,
	}
	addCommonFlags(rankCmd)
	root.AddCommand(rankCmd)

	rankHe3Cmd := &cobra.Command{
		Use:   "rank-he3",
		Short: "Build the victory-token leaderboard",
		RunE:  runRankHe3,
	}
	addCommonFlags(rankHe3Cmd)
	root.AddCommand(rankHe3Cmd)

	compareCmd := &cobra.Command{
		Use:   "compare <agent-a> <agent-b>",
		Short: "Compare two agents head to head",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	addCommonFlags(compareCmd)
	root.AddCommand(compareCmd)

	profileCmd := &cobra.Command{
		Use:   "profile <agent>",
		Short: "Derive an agent's strategy profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	addCommonFlags(profileCmd)
	root.AddCommand(profileCmd)

	counterCmd := &cobra.Command{
		Use:   "counter <agent>",
		Short: "Derive counter-strategy analysis for an opponent",
		Args:  cobra.ExactArgs(1),
		RunE:  runCounter,
	}
	addCommonFlags(counterCmd)
	root.AddCommand(counterCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "game chain RPC URL")
	cmd.Flags().String("indexer-url", "", "position indexer base URL")
	cmd.Flags().String("agents", "", "agent roster (comma-separated id=address)")
	cmd.Flags().String("tokens", "", "resource token addresses (comma-separated symbol=address)")
	cmd.Flags().String("pools", "", "pair token addresses (comma-separated pool=address)")
	cmd.Flags().String("farms", "", "farm addresses (comma-separated farm=address)")
	cmd.Flags().String("weights-file", "", "scoring weights file")
	cmd.Flags().Float64("victory-threshold", 7_000_000, "He3 balance that wins the game")
	cmd.Flags().Int("fetch-concurrency", 8, "concurrent chain fetches")
	cmd.Flags().Int("max-retries", 5, "maximum indexer retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial indexer retry backoff")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("out", "./data/reports.jsonl", "output JSONL path")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// app bundles the wired services a command needs.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	chain     *chain.Client
	resolver  *registry.StaticResolver
	collector *collector.Collector
	scoring   *scoring.Service
	ranking   *ranking.Engine
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("agent roster is required")
	}

	resolver, err := registry.NewStaticResolver(cfg.Agents)
	if err != nil {
		return nil, err
	}

	assets, err := collector.AssetsFromHex(cfg.TokenAddresses, cfg.PoolAddresses, cfg.FarmAddresses)
	if err != nil {
		return nil, err
	}

	weightCfg := weights.Default()
	if cfg.WeightsFile != "" {
		weightCfg, err = weights.LoadFile(cfg.WeightsFile)
		if err != nil {
			return nil, fmt.Errorf("load weights: %w", err)
		}
	}
	if err := weightCfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate weights: %w", err)
	}

	if unknown, missing := assets.Coverage(); len(unknown) > 0 || len(missing) > 0 {
		logger.Warn("asset coverage gaps",
			zap.Strings("unknown", unknown),
			zap.Strings("missing", missing),
		)
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		chainClient.Close()
		return nil, fmt.Errorf("query chain id: %w", err)
	}
	head, err := chainClient.LatestBlockNumber(ctx)
	if err != nil {
		chainClient.Close()
		return nil, fmt.Errorf("query head block: %w", err)
	}
	logger.Info("chain connected",
		zap.String("chain_id", chainID.String()),
		zap.Uint64("head_block", head),
	)

	reader := chain.NewReader(chainClient, logger)

	var positions collector.PositionSource
	if cfg.IndexerURL != "" {
		positions = indexer.NewClient(cfg.IndexerURL, indexer.Options{
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
		}, logger)
	}

	coll := collector.New(reader, resolver, positions, assets, cfg.FetchConcurrency, logger)
	svc := scoring.NewService(coll, weightCfg, logger)
	engine := ranking.NewEngine(svc, coll, cfg.VictoryThreshold, cfg.FetchConcurrency, logger)

	return &app{
		cfg:       cfg,
		logger:    logger,
		chain:     chainClient,
		resolver:  resolver,
		collector: coll,
		scoring:   svc,
		ranking:   engine,
	}, nil
}

func (a *app) close() {
	a.chain.Close()
	a.logger.Sync()
}

func runProgression(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	ids := app.resolver.AgentIDs()
	app.logger.Info("progression scan start",
		zap.String("rpc", app.cfg.RPCURL),
		zap.Int("agents", len(ids)),
	)

	progressions := make([]model.AgentProgression, 0, len(ids))
	for _, id := range ids {
		p, err := app.scoring.Progression(ctx, id)
		if err != nil {
			return fmt.Errorf("score agent %s: %w", id, err)
		}
		progressions = append(progressions, p)
	}

	if err := printJSON(progressions); err != nil {
		return err
	}
	if app.cfg.Out != "" {
		if err := storage.NewJsonlStorage(app.cfg.Out).PutProgressionBatch(progressions); err != nil {
			return err
		}
	}
	return app.persist(ctx, "progression", func(store *postgres.Store) error {
		return store.UpsertProgressions(ctx, progressions)
	})
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	ids := app.resolver.AgentIDs()
	app.logger.Info("ranking start", zap.Int("agents", len(ids)))

	entries, err := app.ranking.RankByProgression(ctx, ids)
	if err != nil {
		return err
	}

	if err := printJSON(entries); err != nil {
		return err
	}
	if app.cfg.Out != "" {
		if err := storage.NewJsonlStorage(app.cfg.Out).PutRanking(entries); err != nil {
			return err
		}
	}
	return app.persist(ctx, "rank", func(store *postgres.Store) error {
		return store.UpsertRanking(ctx, entries)
	})
}

func runRankHe3(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	ids := app.resolver.AgentIDs()
	app.logger.Info("he3 ranking start",
		zap.Int("agents", len(ids)),
		zap.Float64("victory_threshold", app.cfg.VictoryThreshold),
	)

	entries, err := app.ranking.RankByHe3(ctx, ids)
	if err != nil {
		return err
	}

	if err := printJSON(entries); err != nil {
		return err
	}
	if app.cfg.Out != "" {
		if err := storage.NewJsonlStorage(app.cfg.Out).PutHe3Ranking(entries); err != nil {
			return err
		}
	}
	return app.persist(ctx, "rank-he3", func(store *postgres.Store) error {
		return store.UpsertHe3Ranking(ctx, entries)
	})
}

// persist writes through to Postgres when a DSN is configured and records
// the run timestamp.
func (a *app) persist(ctx context.Context, runName string, fn func(*postgres.Store) error) error {
	if a.cfg.PGDSN == "" {
		return nil
	}
	store, err := postgres.NewStore(ctx, a.cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	if lastTS, ok, err := store.LoadLastRun(ctx, runName); err != nil {
		a.logger.Warn("load last run failed", zap.String("run", runName), zap.Error(err))
	} else if ok {
		a.logger.Info("previous run found",
			zap.String("run", runName),
			zap.Time("last_run", time.Unix(int64(lastTS), 0).UTC()),
		)
	}

	if err := fn(store); err != nil {
		return err
	}
	return store.SaveLastRun(ctx, runName, uint64(time.Now().Unix()))
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
