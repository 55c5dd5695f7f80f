// Copyright 2025 the taskvault authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Defaults applied when the config file omits a field or no file exists.
const (
	DefaultDataPath  = "data/tasks.json"
	DefaultAuditPath = "data/audit.log"
	DefaultActor     = "system"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the store locations and the default operation actor.
type Config struct {
	DataPath  string `json:"data_path,omitempty" yaml:"data_path,omitempty"`
	AuditPath string `json:"audit_path,omitempty" yaml:"audit_path,omitempty"`
	Actor     string `json:"actor,omitempty" yaml:"actor,omitempty"`
}

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		DataPath:  DefaultDataPath,
		AuditPath: DefaultAuditPath,
		Actor:     DefaultActor,
	}
}

// 🎯 Load loads the configuration from a file. A missing file yields the
// defaults; a present but unparsable file is an error.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataPath == "" {
		c.DataPath = DefaultDataPath
	}
	if c.AuditPath == "" {
		c.AuditPath = DefaultAuditPath
	}
	if c.Actor == "" {
		c.Actor = DefaultActor
	}
}

// ✅ Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data_path is required")
	}
	if c.AuditPath == "" {
		return errors.New("audit_path is required")
	}
	if c.DataPath == c.AuditPath {
		return errors.Errorf("data_path and audit_path must differ, both are %q", c.DataPath)
	}
	return nil
}
