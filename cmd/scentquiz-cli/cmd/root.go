package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"scentquiz/internal/bootstrap"
	"scentquiz/internal/config"
	"scentquiz/internal/logging"
)

var (
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
	app        *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "scentquiz-cli",
	Short: "Perfume recommendations from the command line",
	Long: `scentquiz-cli answers the perfume quiz without the interactive UI.

It recommends perfumes for a mood, an occasion and optional scent notes,
manages users and their history, edits the catalog and serves the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		v := viper.New()
		if err := v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level")); err != nil {
			return err
		}
		var err error
		cfg, err = config.LoadWith(v, configFile)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// closeApp releases the stores and flushes the logger, whether or not the command failed
func closeApp() {
	if app != nil {
		if err := app.Close(); err != nil {
			logger.Warn("close stores", zap.Error(err))
		}
		app = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func init() {
	cobra.OnFinalize(closeApp)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides logging.level")
}

// GetApp loads the catalog and opens the stores on first use
func GetApp(ctx context.Context) (*bootstrap.App, error) {
	if app != nil {
		return app, nil
	}
	var err error
	app, err = bootstrap.New(ctx, cfg, logger)
	return app, err
}
