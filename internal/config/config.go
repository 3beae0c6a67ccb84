// Package config loads the two-file YAML configuration layout the
// teacher's cmd/main.go expects (app.yaml for process-level settings,
// source.yaml for the analysis parameters themselves), merging them
// into one Config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Matching holds spec.md §6's tunable analysis parameters.
type Matching struct {
	Tokenizer          string `yaml:"tokenizer"`            // "naive" or "relative"
	MaxTokenOffset     *int   `yaml:"max_token_offset"`      // nil disables clamping
	NoiseThreshold     int    `yaml:"noise_threshold"`       // k
	GuaranteeThreshold int    `yaml:"guarantee_threshold"`   // t
	MaxPostingList     int    `yaml:"max_posting_list"`      // 0 disables the guard
	BloomFalsePositive float64 `yaml:"bloom_false_positive"`
}

// App holds process-level settings, mirroring the teacher's App
// section of app.yaml (WorkDir, log output).
type App struct {
	WorkDir    string   `yaml:"work_dir"`
	LogLevel   string   `yaml:"log_level"`
	LogOutputs []string `yaml:"log_outputs"`
}

// Server configures the optional HTTP wrapper (internal/httpapi).
type Server struct {
	Addr string `yaml:"addr"`
}

// Mcp configures the optional MCP tool wrapper (internal/mcptool).
type Mcp struct {
	Addr string `yaml:"addr"`
}

// Config is the merged result of app.yaml and source.yaml.
type Config struct {
	App      App      `yaml:"app"`
	Matching Matching `yaml:"matching"`
	Server   Server   `yaml:"server"`
	Mcp      Mcp      `yaml:"mcp"`
}

// defaults mirror the guarantee/noise relationship spec.md §4.2
// requires (t >= k) and a posting-list guard generous enough to only
// catch genuinely pathological hashes.
func defaults() Config {
	return Config{
		Matching: Matching{
			Tokenizer:          "relative",
			NoiseThreshold:     15,
			GuaranteeThreshold: 25,
			MaxPostingList:     10000,
			BloomFalsePositive: 0.01,
		},
	}
}

// LoadConfig reads appPath and sourcePath, overlaying sourcePath's
// Matching section onto appPath's App/Server/Mcp sections. Either path
// may be empty, in which case that file is skipped and its section
// keeps its defaults — this lets cmd/armsim run with no config files
// at all for a quick one-off comparison.
func LoadConfig(appPath, sourcePath string) (*Config, error) {
	cfg := defaults()

	if appPath != "" {
		if err := loadInto(appPath, &cfg); err != nil {
			return nil, fmt.Errorf("loading app config %s: %w", appPath, err)
		}
	}
	if sourcePath != "" {
		if err := loadInto(sourcePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading source config %s: %w", sourcePath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects a configuration that would make the pipeline
// meaningless or panic downstream (spec.md §7: configuration errors
// are the one class of fatal error).
func (c *Config) Validate() error {
	m := c.Matching
	if m.Tokenizer != "naive" && m.Tokenizer != "relative" {
		return fmt.Errorf("matching.tokenizer must be %q or %q, got %q", "naive", "relative", m.Tokenizer)
	}
	if m.NoiseThreshold <= 0 {
		return fmt.Errorf("matching.noise_threshold must be positive, got %d", m.NoiseThreshold)
	}
	if m.GuaranteeThreshold < m.NoiseThreshold {
		return fmt.Errorf("matching.guarantee_threshold (%d) must be >= noise_threshold (%d)", m.GuaranteeThreshold, m.NoiseThreshold)
	}
	if m.MaxTokenOffset != nil && *m.MaxTokenOffset < 0 {
		return fmt.Errorf("matching.max_token_offset must be >= 0, got %d", *m.MaxTokenOffset)
	}
	return nil
}
