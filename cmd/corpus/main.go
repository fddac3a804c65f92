package main

import (
	"fmt"
	"os"

	"github.com/newthinker/corpus/internal/app"
	"github.com/newthinker/corpus/internal/config"
	"github.com/newthinker/corpus/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	debug       bool
	metricsFile string
)

var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "corpus - dataset store for speech recognition experiments",
	Long: `corpus saves and loads training corpora on local disk or S3-compatible
storage and summarizes training statistics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
}

// openApp loads the configuration and builds the store wiring.
func openApp() (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if metricsFile != "" {
		cfg.Metrics.Textfile = metricsFile
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log, err := logger.New(debug || cfg.Log.Development, level)
	if err != nil {
		return nil, err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return a, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
