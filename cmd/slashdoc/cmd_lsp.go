package main

import (
	"github.com/spf13/cobra"
	"go.dw1.io/slashdoc/internal/lsp"
)

func newLSPCmd(opts *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.New(version, opts.cfg.Token, opts.cfg.Indent)
			return server.RunStdio()
		},
	}
}
