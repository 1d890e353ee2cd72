package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, time.Hour, cfg.Currency.GetCacheTTL())
	assert.Equal(t, 10*time.Second, cfg.Clients.ExchangeRate.GetTimeout())
	assert.Equal(t, int64(20<<20), cfg.Tools.MaxUploadBytes())
	assert.False(t, cfg.IsProduction())
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("ABACUS_PORT", "9090")
	t.Setenv("ABACUS_OFFLINE", "true")
	t.Setenv("ABACUS_LOG_LEVEL", "debug")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Clients.ExchangeRate.Offline)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("ABACUS_PORT", "eighty")
	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abacus.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "prod"

[server]
port = 7000

[currency]
base = "eur"
cache_ttl = "15m"

[clients.exchange_rate]
base_url = "http://rates.local"
`), 0o644))

	t.Setenv("ABACUS_HOST", "127.0.0.1")

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"), path)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "EUR", cfg.Currency.Base)
	assert.Equal(t, 15*time.Minute, cfg.Currency.GetCacheTTL())
	assert.Equal(t, "http://rates.local", cfg.Clients.ExchangeRate.BaseURL)
	// untouched sections keep their defaults
	assert.Equal(t, "10s", cfg.Clients.ExchangeRate.Timeout)
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abacus.toml")
	require.NoError(t, os.WriteFile(path, []byte("server = [oops"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigPaths_EnvLast(t *testing.T) {
	t.Setenv("ABACUS_CONFIG", "/etc/abacus/custom.toml")
	paths := ConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "/etc/abacus/custom.toml", paths[len(paths)-1])
}

func TestConfig_PublicHidesKey(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Clients.ExchangeRate.APIKey = "secret"
	pub := cfg.Public()
	assert.Equal(t, "USD", pub.CurrencyBase)
	assert.Equal(t, 20, pub.MaxUploadMB)
	assert.NotContains(t, pub.CacheTTL+pub.Environment+pub.Version, "secret")
}

func TestLoadVersionFile(t *testing.T) {
	oldV, oldB, oldC := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = oldV, oldB, oldC })
	Version, Build, GitCommit = "dev", "unknown", "v1-from-ldflags"

	path := filepath.Join(t.TempDir(), ".version")
	require.NoError(t, os.WriteFile(path, []byte("# build info\nversion: 1.2.3\nbuild: 2025-01-01\ncommit: abc123\n"), 0o644))
	loadVersionFile(path)

	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "2025-01-01", GetBuild())
	assert.Equal(t, "v1-from-ldflags", GetGitCommit())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,798.65", FormatNumber(1798.6518, 2))
	assert.Equal(t, "1,000,000", FormatNumber(1e6, 0))
	assert.Contains(t, FormatMoney(1798.65, "USD"), "1,798.65")
	assert.Equal(t, "XYZ 5.00", FormatMoney(5, "XYZ"))
	assert.Equal(t, "€", CurrencySymbol("EUR"))
	assert.Equal(t, "nope", CurrencySymbol("nope"))
}

func TestLoggerFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "abacus.log")
	logger := NewLoggerFromConfig(LoggingConfig{Level: "info", Format: "json", Outputs: []string{"file"}, FilePath: path})
	logger.Info().Str("calculator", "loan").Msg("ran")
	logger.Debug().Msg("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"calculator":"loan"`)
	assert.NotContains(t, string(data), "hidden")

	silent := NewLoggerFromConfig(LoggingConfig{Level: "disabled"})
	assert.NotNil(t, silent)
}
