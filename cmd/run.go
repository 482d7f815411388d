package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/signalquiz/internal/app"
	"github.com/abhisek/signalquiz/internal/config"
	"github.com/abhisek/signalquiz/internal/host"
	"github.com/abhisek/signalquiz/internal/insight"
	"github.com/abhisek/signalquiz/internal/kv"
	"github.com/abhisek/signalquiz/internal/kv/rediskv"
	"github.com/abhisek/signalquiz/internal/leaderboard"
	"github.com/abhisek/signalquiz/internal/llm"
	"github.com/abhisek/signalquiz/internal/logging"
	"github.com/abhisek/signalquiz/internal/payment"
	"github.com/abhisek/signalquiz/internal/quiz"
	"github.com/abhisek/signalquiz/internal/screens"
	"github.com/abhisek/signalquiz/internal/share"
	"github.com/abhisek/signalquiz/internal/store"
	"github.com/abhisek/signalquiz/internal/wallet"
)

// runApp loads config, opens the store, builds dependencies, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	kvStore, closeKV, err := openKV(ctx, cfg, st)
	if err != nil {
		return err
	}
	defer closeKV()

	gateCfg, err := payment.GateConfigFrom(cfg)
	if err != nil {
		return fmt.Errorf("payment config: %w", err)
	}

	w, closeWallet := openWallet(ctx, cfg, log)
	defer closeWallet()

	var h host.Host = host.Standalone{}
	if cfg.Host.BridgeURL != "" {
		h = host.NewBridge(cfg.Host.BridgeURL, nil)
	}

	var insights *insight.Service
	if cfg.Insight.Provider != "" {
		provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(cfg.Insight.Provider), eventRepo, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Result insights will be unavailable.")
		} else {
			insights = insight.NewService(provider, insight.DefaultConfig())
		}
	}

	board := leaderboard.New(kvStore)
	flow := quiz.Flow{
		Shuffle:              cfg.Quiz.Shuffle,
		EnableBackNavigation: cfg.Quiz.EnableBackNavigation,
		EnableLeaderboardUI:  cfg.Quiz.EnableLeaderboardUI,
	}

	opts := app.Options{
		Name:          cfg.App.Name,
		Host:          h,
		DetectTimeout: cfg.Host.DetectTimeout,
		Build: func(env host.Environment) *screens.Services {
			return &screens.Services{
				Bank: quiz.DefaultBank(),
				Flow: flow,
				Env:  env,
				NewGate: func(opts ...payment.Option) *payment.Gate {
					opts = append([]payment.Option{payment.WithJournal(eventRepo)}, opts...)
					return payment.NewGate(gateCfg, w, env, opts...)
				},
				Price:   fmt.Sprintf("%s ETH on %s", cfg.Payment.AmountETH, cfg.Network.Name),
				Board:   board,
				Sharer:  newSharer(h, env),
				Insight: insights,
				Results: eventRepo,
				History: eventRepo,
				HomeURL: cfg.App.HomeURL,
				Log:     log,
			}
		},
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("kv_backend", cfg.Leaderboard.Backend),
		zap.Uint64("chain_id", cfg.Network.ChainID),
		zap.Bool("wallet", cfg.Network.RPCURL != ""),
		zap.Bool("host_bridge", cfg.Host.BridgeURL != ""),
	)
	return app.Run(ctx, opts)
}

// openKV returns the leaderboard backend selected by config and a func
// releasing it.
func openKV(ctx context.Context, cfg config.Config, st *store.Store) (kv.Store, func(), error) {
	switch cfg.Leaderboard.Backend {
	case config.BackendRedis:
		client, err := rediskv.Dial(ctx, cfg.Leaderboard.RedisAddr,
			cfg.Leaderboard.RedisPassword, cfg.Leaderboard.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open leaderboard backend: %w", err)
		}
		return rediskv.New(client, "signalquiz:"), func() { client.Close() }, nil
	case config.BackendMemory:
		return kv.NewMemory(), func() {}, nil
	default:
		return st.KV(), func() {}, nil
	}
}

// openWallet dials the configured wallet endpoint. Without one, or when
// dialing fails, the gate gets a connector that always reports
// "no wallet found".
func openWallet(ctx context.Context, cfg config.Config, log *zap.Logger) (wallet.Wallet, func()) {
	if cfg.Network.RPCURL == "" {
		return wallet.Unavailable{}, func() {}
	}
	w, err := wallet.DialRPC(ctx, cfg.Network.RPCURL,
		wallet.WithPollInterval(cfg.Payment.PollInterval))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Wallet unavailable:", err)
		log.Warn("dial wallet", zap.Error(err))
		return wallet.Unavailable{}, func() {}
	}
	return w, w.Close
}

// newSharer orders share targets: host compose, system browser, clipboard.
func newSharer(h host.Host, env host.Environment) *share.Sharer {
	return share.New(
		share.HostComposer{Host: h, Embedded: env.Embedded},
		share.SystemShare{},
		share.Clipboard{},
	)
}
