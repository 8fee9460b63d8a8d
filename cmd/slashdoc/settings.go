package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"go.dw1.io/slashdoc"

	_ "github.com/tliron/commonlog/simple"
)

// settings holds the flags shared by all commands, merged over the config
// file in resolve.
type settings struct {
	configPath string
	token      string
	indent     int
	output     string
	cache      bool
	verbose    int

	cfg slashdoc.Config
}

func (s *settings) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&s.configPath, "config", slashdoc.DefaultConfigFile, "config file")
	flags.StringVarP(&s.token, "token", "t", slashdoc.DefaultToken, "comment token marking doc lines")
	flags.IntVarP(&s.indent, "indent", "i", slashdoc.DefaultIndent, "spaces per indent level")
	flags.StringVarP(&s.output, "output", "o", "", "output file (default stdout)")
	flags.BoolVar(&s.cache, "cache", false, "cache parse results in the user cache directory")
	flags.CountVarP(&s.verbose, "verbose", "v", "increase log verbosity (repeatable)")
}

// resolve loads the config file and applies explicitly set flags over it.
// A missing config file is only an error when --config was given.
func (s *settings) resolve(cmd *cobra.Command) error {
	commonlog.Configure(s.verbose, nil)

	flags := cmd.Flags()

	cfg, err := slashdoc.LoadConfig(s.configPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !flags.Changed("config"):
		cfg = slashdoc.DefaultConfig()
	default:
		return err
	}

	if flags.Changed("token") {
		cfg.Token = s.token
	}
	if flags.Changed("indent") {
		cfg.Indent = s.indent
	}
	if flags.Changed("output") {
		cfg.Output = s.output
	}
	if flags.Changed("cache") {
		cfg.Cache = s.cache
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg

	return nil
}

func (s *settings) options(ctx context.Context) []slashdoc.Option {
	return append(s.cfg.Options(), slashdoc.WithContext(ctx))
}

// load collects the inputs named by args and parses them.
func (s *settings) load(ctx context.Context, args []string) (*slashdoc.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := slashdoc.CollectFiles(ctx, args)
	if err != nil {
		return nil, err
	}

	sd := slashdoc.New(s.options(ctx)...)

	return sd.Load(files...)
}

// writeOutput writes out to the configured output file, or to w.
func (s *settings) writeOutput(w io.Writer, out string) error {
	if s.cfg.Output == "" || s.cfg.Output == "-" {
		_, err := io.WriteString(w, out)
		return err
	}

	if err := os.WriteFile(s.cfg.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
