package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint64(8453), cfg.Network.ChainID)
	assert.Equal(t, "Base", cfg.Network.Name)
	assert.Equal(t, "0x1A73665e17bFb07a8A9cE4Ab0bc2db71b36B38e4", cfg.Payment.RecipientAddress)
	assert.Equal(t, 60*time.Second, cfg.Payment.ConnectTimeout)
	assert.True(t, cfg.Quiz.EnableBackNavigation)
	assert.Equal(t, BackendSQLite, cfg.Leaderboard.Backend)
	assert.Empty(t, cfg.Insight.Provider)
}

func TestAmountWei(t *testing.T) {
	tests := []struct {
		amount  string
		want    string
		wantErr bool
	}{
		{"0.00001", "10000000000000", false},
		{"1", "1000000000000000000", false},
		{"0.000000000000000001", "1", false},
		{"0.0000000000000000001", "", true},
		{"0", "", true},
		{"-1", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := PaymentConfig{AmountETH: tt.amount}.AmountWei()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chain", func(c *Config) { c.Network.ChainID = 0 }},
		{"bad amount", func(c *Config) { c.Payment.AmountETH = "lots" }},
		{"unknown backend", func(c *Config) { c.Leaderboard.Backend = "etcd" }},
		{"negative timeout", func(c *Config) { c.Payment.ConnectTimeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Payment.RecipientAddress = PlaceholderRecipient
	assert.NoError(t, cfg.Validate(), "placeholder recipient is reported at reveal time")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signalquiz.yaml")
	yml := `
payment:
  amount_eth: "0.001"
  connect_timeout: 10s
network:
  chain_id: 84532
  name: Base Sepolia
  rpc_url: http://127.0.0.1:8545
quiz:
  enable_back_navigation: false
leaderboard:
  backend: redis
  redis_db: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.001", cfg.Payment.AmountETH)
	assert.Equal(t, 10*time.Second, cfg.Payment.ConnectTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Payment.ConfirmTimeout, "unset keys keep defaults")
	assert.Equal(t, uint64(84532), cfg.Network.ChainID)
	assert.Equal(t, "Base Sepolia", cfg.Network.Name)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.Network.RPCURL)
	assert.False(t, cfg.Quiz.EnableBackNavigation)
	assert.True(t, cfg.Quiz.Shuffle)
	assert.Equal(t, BackendRedis, cfg.Leaderboard.Backend)
	assert.Equal(t, 2, cfg.Leaderboard.RedisDB)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payment:\n  connect_timeout: soon\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signalquiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network:\n  name: FromFile\n"), 0o644))

	t.Setenv("SIGNALQUIZ_NETWORK_NAME", "FromEnv")
	t.Setenv("SIGNALQUIZ_CHAIN_ID", "10")
	t.Setenv("SIGNALQUIZ_SHUFFLE", "false")
	t.Setenv("SIGNALQUIZ_CONFIRM_TIMEOUT", "30s")
	t.Setenv("SIGNALQUIZ_LLM_PROVIDER", "mock")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.Network.Name)
	assert.Equal(t, uint64(10), cfg.Network.ChainID)
	assert.False(t, cfg.Quiz.Shuffle)
	assert.Equal(t, 30*time.Second, cfg.Payment.ConfirmTimeout)
	assert.Equal(t, "mock", cfg.Insight.Provider)
}

func TestEnvParseErrors(t *testing.T) {
	for key, val := range map[string]string{
		"SIGNALQUIZ_CHAIN_ID":        "base",
		"SIGNALQUIZ_BACK_NAV":        "maybe",
		"SIGNALQUIZ_CONNECT_TIMEOUT": "forever",
	} {
		cfg := DefaultConfig()
		env := map[string]string{key: val}
		err := cfg.applyEnv(func(k string) string { return env[k] })
		assert.Error(t, err, key)
	}
}
