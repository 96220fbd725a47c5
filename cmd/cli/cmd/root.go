// Package cmd provides the CLI commands for budgetcast.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"budgetcast/core/engine"
	"budgetcast/core/period"
	"budgetcast/internal/config"
	"budgetcast/internal/errors"
	"budgetcast/internal/logging"
)

var (
	cfgFile string
	asOf    string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "budgetcast",
	Short: "Project recurring bills and allocate budget envelopes",
	Long: `budgetcast projects recurring subscription charges into 7-day pay
periods and allocates budget category balances to cover them.

Subscriptions and categories come from HCL plan files.

Examples:
  budgetcast upcoming ./plans
  budgetcast upcoming --periods 4 ./plans
  budgetcast allocate --format json ./plans`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.budgetcast.json)")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "reference date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	logCfg := config.Get().Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
}

// newEngine builds the engine from active config and the --as-of flag.
func newEngine() (*engine.Engine, error) {
	anchor, err := config.Get().Anchor()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithAnchor(period.Calculator{Anchor: anchor}),
		engine.WithLogger(logging.Logger),
	}

	if asOf != "" {
		at, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return nil, errors.Wrap(errors.TypeInput, "parsing --as-of date", err)
		}
		opts = append(opts, engine.WithClock(engine.FixedClock{At: at}))
	}

	return engine.New(opts...), nil
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the budgetcast version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("budgetcast " + Version)
	},
}

// Version is set at build time via -ldflags
var Version = "dev"
