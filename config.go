// Copyright 2015 Prometheus Team
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mailprep renders @placeholder@ email templates and hands the
// result to a local sendmail-compatible mail agent such as msmtp.
package mailprep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAgent is the mail agent executable looked up in $PATH.
	DefaultAgent = "msmtp"
	// DefaultAgentConfig is the per-user mail agent configuration file.
	DefaultAgentConfig = "~/.msmtprc"
	// DefaultLogFile is the append-only log written by the CLI.
	DefaultLogFile = "/var/log/mailprep.log"
	// DefaultLogLevel is the minimum level written to the log.
	DefaultLogLevel = "debug"
)

var validate = validator.New()

// Config holds the settings for rendering and delivering a message.
// It can be loaded from a YAML file using Load or LoadFile; keys left
// out of the file keep their DefaultConfig values.
type Config struct {
	// Agent is the sendmail-compatible executable (name or path).
	Agent string `yaml:"agent,omitempty" json:"agent,omitempty" validate:"required"`
	// AgentConfig is the agent's configuration file. A leading "~/" is
	// expanded to the user's home directory.
	AgentConfig string `yaml:"agent_config,omitempty" json:"agent_config,omitempty" validate:"required"`
	// LogFile is the path of the append-only log.
	LogFile string `yaml:"log_file,omitempty" json:"log_file,omitempty" validate:"required"`
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty" validate:"oneof=trace debug info warn error"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Agent:       DefaultAgent,
		AgentConfig: DefaultAgentConfig,
		LogFile:     DefaultLogFile,
		LogLevel:    DefaultLogLevel,
	}
}

// Load parses the YAML string s over DefaultConfig and validates the
// result.
func Load(s string) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(s), &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses the YAML file at the given filename.
func LoadFile(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Load(string(b))
}

// Validate checks the configuration for missing or malformed fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AgentConfigPath returns AgentConfig with "~" expanded.
func (c *Config) AgentConfigPath() (string, error) {
	p := c.AgentConfig
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// String returns the YAML representation of the configuration.
func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<error creating config string: %s>", err)
	}

	return string(b)
}
