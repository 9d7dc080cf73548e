package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance and validates it. Configuration
// problems surface here, before any message is fetched.
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/inbox-triage/")
	v.AddConfigPath("$HOME/.inbox-triage")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("INBOX_TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	cfg := &Config{v: v}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM pipeline defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.max_body_chars", 2000)
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.retry_backoff", "1s")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-2.0-flash")

	// Chat-completion defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.response_format", "json_object")

	// Gmail defaults
	v.SetDefault("gmail.credentials_file", "credentials.json")
	v.SetDefault("gmail.token_file", "token.json")
	v.SetDefault("gmail.auth_mode", "file")
	v.SetDefault("gmail.query", "in:inbox newer_than:7d")
	v.SetDefault("gmail.max_results", 10)

	// Local rule defaults
	v.SetDefault("rules.blocked_domains", []string{"thegivingblock.com"})
	v.SetDefault("rules.survey_phrases", []string{
		"rate your experience",
		"how did we do",
		"tell us about your visit",
		"your recent purchase",
		"share your feedback",
		"survey",
	})
	v.SetDefault("rules.sales_phrases", []string{
		"would you be interested",
		"quick call",
		"jump on a call",
		"book time",
		"schedule a call",
		"pick a time",
		"calendly.com",
		"calendar link",
		"case study",
		"pilot program",
		"free consultation",
		"special offer",
		"limited time",
		"intro ",
		" x ", // e.g., "Intro Foo x Bar"
		"we help you",
		"we can book",
		"generate leads",
		"lead gen",
	})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate fails fast on configuration the pipeline cannot run with.
func (c *Config) Validate() error {
	llm := c.GetLLM()

	switch llm.Provider {
	case "gemini":
		if c.GetGemini().APIKey == "" {
			return fmt.Errorf("gemini.api_key must be set when llm.provider is gemini")
		}
	case "openai":
		openAI := c.GetOpenAI()
		if openAI.APIKey == "" {
			return fmt.Errorf("openai.api_key must be set when llm.provider is openai")
		}
		switch openAI.ResponseFormat {
		case "json_object", "json_schema", "text", "none":
		default:
			return fmt.Errorf("unsupported openai.response_format: %q", openAI.ResponseFormat)
		}
	default:
		return fmt.Errorf("unsupported llm.provider: %q", llm.Provider)
	}

	if llm.MaxBodyChars <= 0 {
		return fmt.Errorf("llm.max_body_chars must be positive")
	}
	if llm.MaxAttempts < 1 {
		return fmt.Errorf("llm.max_attempts must be at least 1")
	}

	gm := c.GetGmail()
	if gm.AuthMode != "file" && gm.AuthMode != "env" {
		return fmt.Errorf("unsupported gmail.auth_mode: %q", gm.AuthMode)
	}
	if gm.MaxResults < 1 || gm.MaxResults > 500 {
		return fmt.Errorf("gmail.max_results must be between 1 and 500")
	}

	return nil
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets a 64-bit integer value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
