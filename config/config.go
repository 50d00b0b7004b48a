package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default values applied before any file or environment overrides.
const (
	DefaultMaxRetryAttempts    = 2
	DefaultSimilarityThreshold = 0.4
	DefaultEscalationLogPath   = "escalation_log.csv"
	DefaultConfigFile          = ".supportflow.yaml"
)

// envPrefix is prepended to upper-cased field names for environment
// variable lookup, e.g. SUPPORTFLOW_MAX_RETRY_ATTEMPTS.
const envPrefix = "SUPPORTFLOW_"

// Config holds all tunable settings for the support workflow.
type Config struct {
	// MaxRetryAttempts is the generation attempt ceiling per ticket.
	MaxRetryAttempts int `yaml:"max_retry_attempts"`

	// SimilarityThreshold is the minimum knowledge base match score.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// EscalationLogPath is where the escalation CSV is appended.
	EscalationLogPath string `yaml:"escalation_log_path"`

	// TranscriptDir enables file-backed run transcripts when non-empty.
	TranscriptDir string `yaml:"transcript_dir"`

	// Model overrides task-based model selection when non-empty.
	Model string `yaml:"model"`

	// WebhookURL receives JSON event notifications when non-empty.
	WebhookURL string `yaml:"webhook_url"`

	// SlackWebhookURL receives Slack notifications when non-empty.
	SlackWebhookURL string `yaml:"slack_webhook_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxRetryAttempts:    DefaultMaxRetryAttempts,
		SimilarityThreshold: DefaultSimilarityThreshold,
		EscalationLogPath:   DefaultEscalationLogPath,
	}
}

// Load resolves configuration from defaults, the given YAML file, and
// SUPPORTFLOW_* environment variables, in that order. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment only.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that resolved values are usable.
func (c Config) Validate() error {
	if c.MaxRetryAttempts < 1 {
		return fmt.Errorf("max_retry_attempts must be at least 1, got %d", c.MaxRetryAttempts)
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %g", c.SimilarityThreshold)
	}
	if c.EscalationLogPath == "" {
		return fmt.Errorf("escalation_log_path must not be empty")
	}
	return nil
}

// applyEnv overlays SUPPORTFLOW_* environment variables. Unparsable
// numeric values are ignored rather than failing the load.
func (c *Config) applyEnv() {
	if v := os.Getenv(envPrefix + "MAX_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetryAttempts = n
		}
	}
	if v := os.Getenv(envPrefix + "SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SimilarityThreshold = f
		}
	}
	if v := os.Getenv(envPrefix + "ESCALATION_LOG_PATH"); v != "" {
		c.EscalationLogPath = v
	}
	if v := os.Getenv(envPrefix + "TRANSCRIPT_DIR"); v != "" {
		c.TranscriptDir = v
	}
	if v := os.Getenv(envPrefix + "MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv(envPrefix + "WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv(envPrefix + "SLACK_WEBHOOK_URL"); v != "" {
		c.SlackWebhookURL = v
	}
}
