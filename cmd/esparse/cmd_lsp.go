package main

import (
	"github.com/spf13/cobra"

	"github.com/example/esparse/lspserve"
)

const version = "0.1.0"

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a Language Server Protocol server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return lspserve.New(version).RunStdio()
		},
	}
}
