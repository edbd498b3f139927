// Released under an MIT license. See LICENSE.

// Package config loads ply's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// DefaultDepth is the default macro expansion depth limit.
const DefaultDepth = 1000

// T (config) holds interpreter settings. Unset fields take their defaults.
type T struct {
	History           string `yaml:"history"`
	LogLevel          string `yaml:"log_level"`
	MaxExpansionDepth int    `yaml:"max_expansion_depth"`
	Prelude           *bool  `yaml:"prelude"`
	Warnings          *bool  `yaml:"warnings"`
	Workers           int    `yaml:"workers"`
}

type config = T

// Defaults returns the settings used when no file overrides them.
func Defaults() *T {
	yes := true

	return &config{
		History:           filepath.Join(home(), ".ply_history"),
		LogLevel:          "warn",
		MaxExpansionDepth: DefaultDepth,
		Prelude:           &yes,
		Warnings:          &yes,
		Workers:           runtime.NumCPU(),
	}
}

// Load reads the configuration file at path. An empty path means the
// default location, which need not exist.
func Load(path string) (*T, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}

		return nil, err
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return c, nil
}

// Path returns the default location of the configuration file.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = home()
	}

	return filepath.Join(dir, "ply", "config.yaml")
}

// Read decodes a configuration from r and fills in defaults.
func Read(r io.Reader) (*T, error) {
	c := &config{}

	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := mergo.Merge(c, Defaults()); err != nil {
		return nil, err
	}

	if c.Workers < 0 || c.MaxExpansionDepth < 0 {
		return nil, errors.New("workers and max_expansion_depth must not be negative")
	}

	if _, err := c.Level(); err != nil {
		return nil, err
	}

	return c, nil
}

// Level returns the configured log level.
func (c *config) Level() (slog.Level, error) {
	var l slog.Level

	err := l.UnmarshalText([]byte(c.LogLevel))

	return l, err
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}

	return "."
}
