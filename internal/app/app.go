package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/abacus/internal/catalog"
	"github.com/bobmcallan/abacus/internal/clients/exchangerate"
	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/services/currency"
	"github.com/bobmcallan/abacus/internal/telemetry"
)

// App holds the initialized services and the MCP server. It is the shared
// core used by cmd/abacus-server and cmd/abacus.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Metrics     *telemetry.Metrics
	Currency    *currency.Service
	Registry    *catalog.Registry
	MCPServer   *server.MCPServer
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes every service. configPath may
// be empty, in which case common.ConfigPaths is searched.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	paths := common.ConfigPaths()
	if configPath != "" {
		paths = []string{configPath}
	}

	config, err := common.LoadConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(getBinaryDir(), config.Logging.FilePath)
	}

	return New(config, common.NewLoggerFromConfig(config.Logging)), nil
}

// New builds an App from an already-loaded configuration.
func New(config *common.Config, logger *common.Logger) *App {
	start := time.Now()
	metrics := telemetry.New()

	var source currency.RateSource
	rc := config.Clients.ExchangeRate
	if rc.Offline {
		logger.Info().Msg("Exchange rates offline, using built-in table")
	} else {
		source = exchangerate.NewClient(
			exchangerate.WithBaseURL(rc.BaseURL),
			exchangerate.WithAPIKey(rc.APIKey),
			exchangerate.WithRateLimit(rc.RateLimit),
			exchangerate.WithTimeout(rc.GetTimeout()),
			exchangerate.WithLogger(logger),
		)
	}
	currencyService := currency.NewService(source, logger,
		currency.WithTTL(config.Currency.GetCacheTTL()),
		currency.WithObserver(metrics),
	)

	registry := catalog.New(
		catalog.WithCurrency(currencyService),
		catalog.WithObserver(metrics),
	)

	mcpServer := server.NewMCPServer(
		"abacus",
		common.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	a := &App{
		Config:      config,
		Logger:      logger,
		Metrics:     metrics,
		Currency:    currencyService,
		Registry:    registry,
		MCPServer:   mcpServer,
		StartupTime: start,
	}
	a.registerTools()

	logger.Info().
		Int("calculators", len(registry.List(""))).
		Dur("startup", time.Since(start)).
		Msg("App initialized")

	return a
}

// Close releases resources held by the App. It is safe to call repeatedly.
func (a *App) Close() {
	a.Logger.Debug().Msg("App closed")
}
