package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/agenteval/evaluators"
	"github.com/BaSui01/agenteval/types"
)

// Config is the complete agenteval configuration.
type Config struct {
	// Log configures logging output.
	Log LogConfig `yaml:"log"`

	// Dataset configures trace input and record output.
	Dataset DatasetConfig `yaml:"dataset"`

	// Tools points at the tool definition file.
	Tools ToolsConfig `yaml:"tools"`

	// Evaluation selects evaluators and the judge deployment.
	Evaluation EvaluationConfig `yaml:"evaluation"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format: json or console.
	Format string `yaml:"format"`
}

// DatasetConfig configures dataset paths and build parallelism.
type DatasetConfig struct {
	// Input is the raw-trace JSONL file.
	Input string `yaml:"input"`
	// Output is the evaluation-record JSONL file.
	Output string `yaml:"output"`
	// Concurrency bounds parallel trace normalization.
	Concurrency int `yaml:"concurrency"`
}

// ToolsConfig configures tool definition loading.
type ToolsConfig struct {
	// Definitions is a YAML file of tool definitions.
	Definitions string `yaml:"definitions"`
}

// EvaluationConfig configures criteria building.
type EvaluationConfig struct {
	// Deployment is the judge model deployment name.
	Deployment string `yaml:"deployment"`
	// Evaluators selects evaluator kinds; empty selects all twelve.
	Evaluators []string `yaml:"evaluators"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Dataset: DatasetConfig{
			Input:       "traces.jsonl",
			Output:      "dataset.jsonl",
			Concurrency: 4,
		},
	}
}

// Validate rejects configurations no run could use.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return types.NewErrorf(types.ErrInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return types.NewErrorf(types.ErrInvalidConfig, "unknown log format %q", c.Log.Format)
	}
	if c.Dataset.Concurrency < 1 {
		return types.NewError(types.ErrInvalidConfig, "dataset concurrency must be at least 1")
	}
	for _, name := range c.Evaluation.Evaluators {
		if _, ok := evaluators.RequirementFor(name); !ok {
			return types.NewErrorf(types.ErrUnknownEvaluator, "unknown evaluator %q", name)
		}
	}
	return nil
}

// Loader loads configuration with the precedence defaults → YAML file →
// environment variables.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a loader with the AGENTEVAL env prefix.
func NewLoader() *Loader {
	return &Loader{envPrefix: "AGENTEVAL"}
}

// WithConfigPath sets the YAML file to load. An empty path skips the
// file stage.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load resolves the final configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from <PREFIX>_<SECTION>_<FIELD> variables.
func (l *Loader) applyEnv(cfg *Config) {
	l.envString("LOG_LEVEL", &cfg.Log.Level)
	l.envString("LOG_FORMAT", &cfg.Log.Format)
	l.envString("DATASET_INPUT", &cfg.Dataset.Input)
	l.envString("DATASET_OUTPUT", &cfg.Dataset.Output)
	l.envInt("DATASET_CONCURRENCY", &cfg.Dataset.Concurrency)
	l.envString("TOOLS_DEFINITIONS", &cfg.Tools.Definitions)
	l.envString("EVALUATION_DEPLOYMENT", &cfg.Evaluation.Deployment)

	if v, ok := l.lookup("EVALUATION_EVALUATORS"); ok {
		var names []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		cfg.Evaluation.Evaluators = names
	}
}

func (l *Loader) lookup(key string) (string, bool) {
	return os.LookupEnv(l.envPrefix + "_" + key)
}

func (l *Loader) envString(key string, dst *string) {
	if v, ok := l.lookup(key); ok {
		*dst = v
	}
}

func (l *Loader) envInt(key string, dst *int) {
	if v, ok := l.lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
