package main

import (
	"github.com/spf13/cobra"

	"github.com/bobmcallan/abacus/internal/app"
	"github.com/bobmcallan/abacus/internal/common"
)

// cli carries the flags shared by every command and the app they build.
type cli struct {
	configPath string
	offline    bool
	jsonOut    bool
	verbose    bool
	rows       int

	app *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "abacus",
		Short:        "Calculators and developer tools",
		Version:      common.GetVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: abacus.toml next to the binary, config/abacus.toml, $ABACUS_CONFIG)")
	flags.BoolVar(&c.offline, "offline", false, "use the built-in exchange-rate table")
	flags.BoolVar(&c.jsonOut, "json", false, "print results as JSON")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")
	flags.IntVar(&c.rows, "rows", 12, "rows shown per table; 0 shows all")

	root.AddCommand(
		c.listCmd(),
		c.describeCmd(),
		c.runCmd(),
		c.ratesCmd(),
		c.imageCmd(),
		c.pdfCmd(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	common.LoadVersionFromFile()

	paths := common.ConfigPaths()
	if c.configPath != "" {
		paths = []string{c.configPath}
	}
	config, err := common.LoadConfig(paths...)
	if err != nil {
		return err
	}
	if c.offline {
		config.Clients.ExchangeRate.Offline = true
	}

	logger := common.NewSilentLogger()
	if c.verbose {
		logger = common.NewLoggerWithOutput("debug", cmd.ErrOrStderr())
	}
	c.app = app.New(config, logger)
	return nil
}
