package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/cli"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file|->",
	Short: "Convert a funnel document to json, yaml, mermaid or png",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		doc, err := cli.ReadDocument(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return cli.Export(context.Background(), w, doc, format, cli.NewCapturer(cfg.Export))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml, mermaid or png")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
