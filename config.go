package slashdoc

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".slashdoc.yaml"

// Config is the file form of the generator settings.
type Config struct {
	Token      string `yaml:"token"`
	Indent     int    `yaml:"indent"`
	Output     string `yaml:"output,omitempty"`
	Stylesheet string `yaml:"stylesheet,omitempty"`
	Cache      bool   `yaml:"cache,omitempty"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Token:      DefaultToken,
		Indent:     DefaultIndent,
		Stylesheet: DefaultStylesheet,
	}
}

// LoadConfig reads a YAML config file on top of [DefaultConfig]. Unknown
// keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the token and indent settings.
func (c Config) Validate() error {
	return validateSettings(c.Token, c.Indent)
}

// Options converts the config to [Slashdoc] options.
func (c Config) Options() []Option {
	opts := []Option{
		WithToken(c.Token),
		WithIndent(c.Indent),
		WithCache(c.Cache),
	}

	if c.Stylesheet != "" {
		opts = append(opts, WithStylesheet(c.Stylesheet))
	}

	return opts
}
