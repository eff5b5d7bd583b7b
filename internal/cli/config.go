package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is
// not given.
const DefaultConfigFile = "l5x.yaml"

// DefaultStore is the index database used when neither the config nor
// --db names one.
const DefaultStore = "l5x.db"

// Config holds CLI defaults. Flags given on the command line win.
type Config struct {
	// Format is the default output format (text|json).
	Format string `yaml:"format"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// Store is the index database path.
	Store string `yaml:"store"`

	// Scenarios is the default scenario directory of the test command.
	Scenarios string `yaml:"scenarios"`

	// Types is the default CUE type directory of the typedef command.
	Types string `yaml:"types"`
}

// LoadConfig reads a YAML config file. A missing file yields the defaults
// unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := &Config{Store: DefaultStore}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Reject unknown keys so typos don't silently fall back to defaults.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Format != "" && !isValidFormat(cfg.Format) {
		return nil, fmt.Errorf("config %s: invalid format %q: must be one of %v", path, cfg.Format, ValidFormats)
	}
	if cfg.Store == "" {
		cfg.Store = DefaultStore
	}
	return cfg, nil
}
