// Package config resolves runtime settings from three layers: built-in
// defaults, an optional .codedoctor.yml in the working directory, and
// environment variables (a .env file is folded into the environment first).
// Later layers win.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	DefaultModel       = "claude-3-opus-20240229"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOutput      = "codebase_analysis.md"

	DefaultAnalysisMaxTokens = 4000
	DefaultQueryMaxTokens    = 1000

	// ConfigFile is looked up in the current working directory.
	ConfigFile = ".codedoctor.yml"
)

// Config is the resolved runtime configuration.
type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Output   string `yaml:"output"`

	AnalysisMaxTokens int `yaml:"analysis_max_tokens"`
	QueryMaxTokens    int `yaml:"query_max_tokens"`

	// Scan bounds; zero means the scanner default applies.
	IgnoreDirs      []string `yaml:"ignore_dirs"`
	MaxFilesPerType int      `yaml:"max_files_per_type"`
	MaxFileSize     int64    `yaml:"max_file_size"`
	ContentLimit    int      `yaml:"content_limit"`

	// Prompt bounds; zero means the prompt default applies.
	TopDependencies int `yaml:"top_dependencies"`
	TopPatterns     int `yaml:"top_patterns"`

	// APIKey is resolved from the environment per provider, never from the
	// yaml file.
	APIKey string `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		Provider:          ProviderAnthropic,
		Model:             DefaultModel,
		Output:            DefaultOutput,
		AnalysisMaxTokens: DefaultAnalysisMaxTokens,
		QueryMaxTokens:    DefaultQueryMaxTokens,
	}
}

// Load resolves the configuration. A missing .env or .codedoctor.yml is not
// an error; a malformed yaml file is.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(ConfigFile)
}

func load(path string) (*Config, error) {
	cfg := defaults()

	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if v := os.Getenv("CODEDOCTOR_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	cfg.Provider = strings.ToLower(cfg.Provider)
	if v := os.Getenv("CODEDOCTOR_MODEL"); v != "" {
		cfg.Model = v
	}
	// A yaml file or env var that switches providers without naming a model
	// should not leave an Anthropic model id pointed at Gemini.
	if cfg.Provider == ProviderGemini && cfg.Model == DefaultModel {
		cfg.Model = DefaultGeminiModel
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("CLAUDE_API_KEY")
		}
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		return nil, fmt.Errorf("config: unknown provider %q", cfg.Provider)
	}

	return cfg, nil
}

// Validate checks the hard preconditions for making a model call.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config: no API key set for provider %s", c.Provider)
	}
	return nil
}
