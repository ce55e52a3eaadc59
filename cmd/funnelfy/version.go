package main

import (
	"fmt"
	"strings"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of funnelfy",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "funnelfy version %s\n", strings.TrimSpace(funnelfy.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
