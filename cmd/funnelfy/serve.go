package main

import (
	"context"
	"os"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/cli"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editing server",
	Long: `Starts the FunnelFy HTTP API: template CRUD and export, live editor sessions
driven by pointer/keyboard events or commands, an SSE view stream and Prometheus metrics.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"server.port":            "port",
			"server.allowed_origins": "allowed-origins",
			"store.driver":           "store",
			"store.path":             "store-path",
			"redis.address":          "redis-addr",
			"redis.lock":             "redis-lock",
		})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(os.Stdout, funnelfy.Version)
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, cfg, logger, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.IntP("port", "p", 8080, "Port to listen on")
	f.String("store", "memory", "Template store: memory, file or redis")
	f.String("store-path", ".funnelfy/templates", "Directory of the file store")
	f.String("redis-addr", "localhost:6379", "Redis address for the redis store")
	f.Bool("redis-lock", false, "Serialize session access through a redis lock")
	f.StringSlice("allowed-origins", []string{"*"}, "CORS allowed origins")
	f.BoolP("quiet", "q", false, "Do not print the banner")
}
