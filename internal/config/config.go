package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raglab/answerd/internal/domain"
)

// Config holds the answerd API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Guardrail GuardrailConfig `yaml:"guardrail"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RetrievalConfig holds retrieval tunables.
type RetrievalConfig struct {
	DefaultPreset          string  `yaml:"default_preset"`           // cos3, dot5 (default: cos3)
	LowConfidenceThreshold float64 `yaml:"low_confidence_threshold"` // flag results whose top score is below this
	MaxTopK                int     `yaml:"max_top_k"`                // upper bound for per-request top_k overrides
	MaxFeatures            int     `yaml:"max_features"`             // vocabulary cap for the TF-IDF fit
	CorpusFile             string  `yaml:"corpus_file"`              // optional YAML corpus; empty = built-in seed
}

// GuardrailConfig holds denylist matching tunables.
type GuardrailConfig struct {
	SemanticThreshold float64 `yaml:"semantic_threshold"` // cosine similarity at or above which a query blocks
	DenylistFile      string  `yaml:"denylist_file"`      // optional YAML denylist; empty = built-in seed
}

// MetricsConfig holds request metrics settings.
type MetricsConfig struct {
	MaxLatencySamples int `yaml:"max_latency_samples"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Retrieval.DefaultPreset == "" {
		c.Retrieval.DefaultPreset = domain.PresetCos3
	}
	if c.Retrieval.LowConfidenceThreshold <= 0 {
		c.Retrieval.LowConfidenceThreshold = 0.15
	}
	if c.Retrieval.MaxTopK <= 0 {
		c.Retrieval.MaxTopK = 10
	}
	if c.Retrieval.MaxFeatures <= 0 {
		c.Retrieval.MaxFeatures = 500
	}
	if c.Guardrail.SemanticThreshold <= 0 {
		c.Guardrail.SemanticThreshold = 0.30
	}
	if c.Metrics.MaxLatencySamples <= 0 {
		c.Metrics.MaxLatencySamples = 1000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if _, err := domain.ConfigFromPreset(c.Retrieval.DefaultPreset); err != nil {
		return fmt.Errorf("retrieval.default_preset: %w", err)
	}
	if c.Retrieval.LowConfidenceThreshold > 1 {
		return fmt.Errorf("retrieval.low_confidence_threshold must be at most 1, got %v",
			c.Retrieval.LowConfidenceThreshold)
	}
	if c.Guardrail.SemanticThreshold > 1 {
		return fmt.Errorf("guardrail.semantic_threshold must be at most 1, got %v",
			c.Guardrail.SemanticThreshold)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
