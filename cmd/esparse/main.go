package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "esparse",
		Short: "A JavaScript source analyzer front end",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newREPLCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
