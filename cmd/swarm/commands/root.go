// Package commands implements the swarm command line interface.
package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pgazmuri/agentswarm/config"
	"github.com/pgazmuri/agentswarm/logging"
	"github.com/pgazmuri/agentswarm/metrics"
)

const Version = "0.1.0"

var (
	configPath  string
	providerTag string
	modelName   string
	logLevel    string
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Swarm - multi-agent conversational assistants",
	Long: `Swarm runs a coordinator that routes your messages to specialist
agents. The chat command starts the pharmacy benefits assistant; the itops
command starts the incident response assistant.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&providerTag, "provider", "", "Completion provider: openai, anthropic or mock")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name override")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(itopsCmd)
}

// loadConfig builds the effective configuration from the file plus flag
// overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if providerTag != "" {
		cfg.Provider = config.Provider(providerTag)
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) logging.Logger {
	return logging.New(&logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
}

// setupMetrics starts the Prometheus endpoint when configured and returns
// the recorder. A nil recorder disables collection.
func setupMetrics(cfg config.Config, logger logging.Logger) *metrics.Metrics {
	if cfg.MetricsAddr == "" {
		return nil
	}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.Error("metrics.server.failed", "addr", cfg.MetricsAddr, "error", err.Error())
		}
	}()
	logger.Info("metrics.server.started", "addr", cfg.MetricsAddr)
	return m
}
