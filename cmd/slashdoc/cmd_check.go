package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

// staleError reports that the generated output differs from the file on
// disk. The diff has already been printed.
type staleError struct {
	path string
}

func (e *staleError) Error() string {
	return e.path + " is out of date"
}

func newCheckCmd(opts *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|dir|package>...",
		Short: "Verify that the output file is up to date",
		Long: `Regenerate the HTML page and compare it with the output file.

Prints a unified diff and exits non-zero when they differ. Requires an
output file, from -o or the config file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfg.Output
			if path == "" || path == "-" {
				return errors.New("check needs an output file (-o or output in the config)")
			}

			doc, err := opts.load(cmd.Context(), args)
			if err != nil {
				return err
			}

			return checkOutput(cmd.OutOrStdout(), path, doc.HTML())
		},
	}
}

// checkOutput compares want with the contents of path, writing a unified
// diff to w when they differ.
func checkOutput(w io.Writer, path, want string) error {
	got, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read output: %w", err)
	}

	if string(got) == want {
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(got)),
		B:        difflib.SplitLines(want),
		FromFile: path,
		ToFile:   "generated",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}

	fmt.Fprint(w, text)

	return &staleError{path: path}
}
