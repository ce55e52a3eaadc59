package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/cli"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/config"
	"github.com/spf13/cobra"
)

// v holds defaults, env overrides and bound flags for every command.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "funnelfy",
	Short: "FunnelFy is a headless funnel diagram editor",
	Long: `FunnelFy edits marketing funnel diagrams: steps on a canvas joined by acyclic connections.
It serves live editing sessions over HTTP and MCP, and converts funnels between JSON, YAML,
Mermaid and PNG from the command line.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	_ = v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// bindFlags maps viper keys to flags of cmd. It runs when cmd executes,
// since several commands bind the same key to their own flag.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig resolves the configuration and logger for cmd.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(v, path)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := cli.NewLogger(cfg.Log, debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}
