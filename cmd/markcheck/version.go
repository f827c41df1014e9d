package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/markcheck"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of markcheck",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "markcheck version %s\n", strings.TrimSpace(markcheck.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
