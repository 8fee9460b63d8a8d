package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.dw1.io/slashdoc"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var stale *staleError
		if !errors.As(err, &stale) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &settings{}

	var format string

	cmd := &cobra.Command{
		Use:   "slashdoc [flags] <file|dir|package>...",
		Short: "Generate HTML documentation from /// doc comments",
		Long: `Generate a single HTML page from the /// doc comments of the given inputs.

Inputs may be files, directories (walked for text files) or Go package
patterns such as ./... . Settings are read from .slashdoc.yaml when present;
flags override it.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.load(cmd.Context(), args)
			if err != nil {
				return err
			}

			out, err := renderFormat(doc, format)
			if err != nil {
				return err
			}

			return opts.writeOutput(cmd.OutOrStdout(), out)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format (html, markdown, json, text)")

	cmd.AddCommand(newViewCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newLSPCmd(opts))

	return cmd
}

func renderFormat(doc *slashdoc.Document, format string) (string, error) {
	switch format {
	case "html":
		return doc.HTML(), nil
	case "markdown", "md":
		return doc.Markdown(), nil
	case "text":
		return doc.Text(), nil
	case "json":
		data, err := doc.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}

		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}
