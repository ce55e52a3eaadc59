package main

import (
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|->",
	Short: "Print a readable report of a funnel",
	Long:  `Prints the steps, connections, entry points and notes of a funnel. Output is styled on a terminal and plain markdown when piped.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := cli.ReadDocument(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return cli.Inspect(cmd.OutOrStdout(), doc)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
