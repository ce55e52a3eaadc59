package main

import (
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|->...",
	Short: "Check funnel documents for schema errors, duplicate ids and cycles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			doc, err := cli.ReadDocument(path, cmd.InOrStdin())
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", path)
				err = cli.Validate(cmd.OutOrStdout(), doc)
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("validation failed for %d of %d documents", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
