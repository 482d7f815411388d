// Package config resolves application settings from defaults, an optional
// YAML file and SIGNALQUIZ_* environment variables, in that order.
package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlaceholderRecipient is the value shipped in unconfigured builds.
const PlaceholderRecipient = "YOUR_ETH_ADDRESS_HERE"

// Config holds all application configuration.
type Config struct {
	Payment     PaymentConfig
	Network     NetworkConfig
	Quiz        QuizConfig
	Leaderboard LeaderboardConfig
	Host        HostConfig
	App         AppConfig
	Insight     InsightConfig
	Log         LogConfig
}

// PaymentConfig describes the fixed pay-to-reveal transaction.
type PaymentConfig struct {
	RecipientAddress string
	AmountETH        string // decimal string, e.g. "0.00001"

	// ConnectTimeout bounds the wallet connect request.
	ConnectTimeout time.Duration
	// ConfirmTimeout bounds waiting for a receipt.
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// NetworkConfig is the chain the payment must happen on.
type NetworkConfig struct {
	ChainID uint64
	Name    string
	RPCURL  string // wallet JSON-RPC endpoint; empty means no connector
}

// QuizConfig selects presentation flow variants.
type QuizConfig struct {
	Shuffle              bool
	EnableBackNavigation bool
	EnableLeaderboardUI  bool
}

// LeaderboardConfig selects the key-value backend.
type LeaderboardConfig struct {
	Backend       string // "sqlite", "redis" or "memory"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// HostConfig locates the host bridge.
type HostConfig struct {
	BridgeURL     string
	DetectTimeout time.Duration
}

// AppConfig holds public app metadata used in shares.
type AppConfig struct {
	Name    string
	HomeURL string
}

// InsightConfig enables the LLM result reflection.
type InsightConfig struct {
	Provider string // empty disables insight
}

// LogConfig configures the debug log file.
type LogConfig struct {
	File string
}

// Backends accepted by LeaderboardConfig.Backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() Config {
	return Config{
		Payment: PaymentConfig{
			RecipientAddress: "0x1A73665e17bFb07a8A9cE4Ab0bc2db71b36B38e4",
			AmountETH:        "0.00001",
			ConnectTimeout:   60 * time.Second,
			ConfirmTimeout:   5 * time.Minute,
			PollInterval:     2 * time.Second,
		},
		Network: NetworkConfig{
			ChainID: 8453,
			Name:    "Base",
		},
		Quiz: QuizConfig{
			Shuffle:              true,
			EnableBackNavigation: true,
			EnableLeaderboardUI:  true,
		},
		Leaderboard: LeaderboardConfig{
			Backend:   BackendSQLite,
			RedisAddr: "localhost:6379",
		},
		Host: HostConfig{
			DetectTimeout: 5 * time.Second,
		},
		App: AppConfig{
			Name:    "Signal Creator Quiz",
			HomeURL: "https://signal-creator-quiz-v1-pdml.vercel.app",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("SIGNALQUIZ_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the app cannot run with. An unconfigured
// recipient is allowed here; the payment gate reports it at reveal time.
func (c Config) Validate() error {
	if c.Network.ChainID == 0 {
		return fmt.Errorf("network.chain_id must be positive")
	}
	if _, err := c.Payment.AmountWei(); err != nil {
		return err
	}
	switch c.Leaderboard.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown leaderboard backend: %q", c.Leaderboard.Backend)
	}
	for name, d := range map[string]time.Duration{
		"payment.connect_timeout": c.Payment.ConnectTimeout,
		"payment.confirm_timeout": c.Payment.ConfirmTimeout,
		"payment.poll_interval":   c.Payment.PollInterval,
		"host.detect_timeout":     c.Host.DetectTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

var weiPerEther = decimal.New(1, 18)

// AmountWei converts AmountETH into wei. The amount must be positive and
// representable in whole wei.
func (p PaymentConfig) AmountWei() (*big.Int, error) {
	d, err := decimal.NewFromString(p.AmountETH)
	if err != nil {
		return nil, fmt.Errorf("parse payment.amount_eth %q: %w", p.AmountETH, err)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("payment.amount_eth must be positive, got %s", p.AmountETH)
	}
	wei := d.Mul(weiPerEther)
	if !wei.IsInteger() {
		return nil, fmt.Errorf("payment.amount_eth %s has more than 18 decimals", p.AmountETH)
	}
	return wei.BigInt(), nil
}

// fileConfig mirrors the YAML layout. Pointers distinguish "unset" from
// zero values so the file only overrides what it names.
type fileConfig struct {
	Payment struct {
		RecipientAddress *string `yaml:"recipient_address"`
		AmountETH        *string `yaml:"amount_eth"`
		ConnectTimeout   *string `yaml:"connect_timeout"`
		ConfirmTimeout   *string `yaml:"confirm_timeout"`
		PollInterval     *string `yaml:"poll_interval"`
	} `yaml:"payment"`
	Network struct {
		ChainID *uint64 `yaml:"chain_id"`
		Name    *string `yaml:"name"`
		RPCURL  *string `yaml:"rpc_url"`
	} `yaml:"network"`
	Quiz struct {
		Shuffle              *bool `yaml:"shuffle"`
		EnableBackNavigation *bool `yaml:"enable_back_navigation"`
		EnableLeaderboardUI  *bool `yaml:"enable_leaderboard_ui"`
	} `yaml:"quiz"`
	Leaderboard struct {
		Backend       *string `yaml:"backend"`
		RedisAddr     *string `yaml:"redis_addr"`
		RedisPassword *string `yaml:"redis_password"`
		RedisDB       *int    `yaml:"redis_db"`
	} `yaml:"leaderboard"`
	Host struct {
		BridgeURL     *string `yaml:"bridge_url"`
		DetectTimeout *string `yaml:"detect_timeout"`
	} `yaml:"host"`
	App struct {
		Name    *string `yaml:"name"`
		HomeURL *string `yaml:"home_url"`
	} `yaml:"app"`
	Insight struct {
		Provider *string `yaml:"provider"`
	} `yaml:"insight"`
	Log struct {
		File *string `yaml:"file"`
	} `yaml:"log"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.Payment.RecipientAddress, f.Payment.RecipientAddress)
	setString(&c.Payment.AmountETH, f.Payment.AmountETH)
	setString(&c.Network.Name, f.Network.Name)
	setString(&c.Network.RPCURL, f.Network.RPCURL)
	setString(&c.Leaderboard.Backend, f.Leaderboard.Backend)
	setString(&c.Leaderboard.RedisAddr, f.Leaderboard.RedisAddr)
	setString(&c.Leaderboard.RedisPassword, f.Leaderboard.RedisPassword)
	setString(&c.Host.BridgeURL, f.Host.BridgeURL)
	setString(&c.App.Name, f.App.Name)
	setString(&c.App.HomeURL, f.App.HomeURL)
	setString(&c.Insight.Provider, f.Insight.Provider)
	setString(&c.Log.File, f.Log.File)

	if f.Network.ChainID != nil {
		c.Network.ChainID = *f.Network.ChainID
	}
	if f.Leaderboard.RedisDB != nil {
		c.Leaderboard.RedisDB = *f.Leaderboard.RedisDB
	}
	if f.Quiz.Shuffle != nil {
		c.Quiz.Shuffle = *f.Quiz.Shuffle
	}
	if f.Quiz.EnableBackNavigation != nil {
		c.Quiz.EnableBackNavigation = *f.Quiz.EnableBackNavigation
	}
	if f.Quiz.EnableLeaderboardUI != nil {
		c.Quiz.EnableLeaderboardUI = *f.Quiz.EnableLeaderboardUI
	}

	for _, d := range []struct {
		name string
		raw  *string
		dst  *time.Duration
	}{
		{"payment.connect_timeout", f.Payment.ConnectTimeout, &c.Payment.ConnectTimeout},
		{"payment.confirm_timeout", f.Payment.ConfirmTimeout, &c.Payment.ConfirmTimeout},
		{"payment.poll_interval", f.Payment.PollInterval, &c.Payment.PollInterval},
		{"host.detect_timeout", f.Host.DetectTimeout, &c.Host.DetectTimeout},
	} {
		if d.raw == nil {
			continue
		}
		v, err := time.ParseDuration(*d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// applyEnv overlays SIGNALQUIZ_* variables read through getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"SIGNALQUIZ_RECIPIENT":      &c.Payment.RecipientAddress,
		"SIGNALQUIZ_AMOUNT_ETH":     &c.Payment.AmountETH,
		"SIGNALQUIZ_NETWORK_NAME":   &c.Network.Name,
		"SIGNALQUIZ_WALLET_RPC":     &c.Network.RPCURL,
		"SIGNALQUIZ_KV_BACKEND":     &c.Leaderboard.Backend,
		"SIGNALQUIZ_REDIS_ADDR":     &c.Leaderboard.RedisAddr,
		"SIGNALQUIZ_REDIS_PASSWORD": &c.Leaderboard.RedisPassword,
		"SIGNALQUIZ_HOST_BRIDGE":    &c.Host.BridgeURL,
		"SIGNALQUIZ_HOME_URL":       &c.App.HomeURL,
		"SIGNALQUIZ_LLM_PROVIDER":   &c.Insight.Provider,
		"SIGNALQUIZ_LOG_FILE":       &c.Log.File,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	if v := getenv("SIGNALQUIZ_CHAIN_ID"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse SIGNALQUIZ_CHAIN_ID: %w", err)
		}
		c.Network.ChainID = id
	}

	bools := map[string]*bool{
		"SIGNALQUIZ_SHUFFLE":        &c.Quiz.Shuffle,
		"SIGNALQUIZ_BACK_NAV":       &c.Quiz.EnableBackNavigation,
		"SIGNALQUIZ_LEADERBOARD_UI": &c.Quiz.EnableLeaderboardUI,
	}
	for key, dst := range bools {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("parse %s: %w", key, err)
			}
			*dst = b
		}
	}

	durations := map[string]*time.Duration{
		"SIGNALQUIZ_CONNECT_TIMEOUT": &c.Payment.ConnectTimeout,
		"SIGNALQUIZ_CONFIRM_TIMEOUT": &c.Payment.ConfirmTimeout,
	}
	for key, dst := range durations {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("parse %s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}
