package config

import (
	"time"
)

// LLMConfig represents the pipeline-level LLM configuration
type LLMConfig struct {
	Provider     string
	MaxBodyChars int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// GeminiConfig represents the configuration for the Gemini backend
type GeminiConfig struct {
	APIKey    string
	ModelName string
}

// OpenAIConfig represents the configuration for the chat-completion backend
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ModelName      string
	ResponseFormat string
}

// GmailConfig represents the configuration for the Gmail mailbox adapter
type GmailConfig struct {
	CredentialsFile string
	TokenFile       string
	AuthMode        string
	Query           string
	MaxResults      int64
}

// RulesConfig represents the local rule engine configuration
type RulesConfig struct {
	BlockedDomains []string
	SurveyPhrases  []string
	SalesPhrases   []string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:     c.GetString("llm.provider"),
		MaxBodyChars: c.GetInt("llm.max_body_chars"),
		MaxAttempts:  c.GetInt("llm.max_attempts"),
		RetryBackoff: c.GetDuration("llm.retry_backoff"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:    c.GetString("gemini.api_key"),
		ModelName: c.GetString("gemini.model_name"),
	}
}

// GetOpenAI returns the chat-completion configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:         c.GetString("openai.api_key"),
		BaseURL:        c.GetString("openai.base_url"),
		ModelName:      c.GetString("openai.model_name"),
		ResponseFormat: c.GetString("openai.response_format"),
	}
}

// GetGmail returns the Gmail configuration
func (c *Config) GetGmail() GmailConfig {
	return GmailConfig{
		CredentialsFile: c.GetString("gmail.credentials_file"),
		TokenFile:       c.GetString("gmail.token_file"),
		AuthMode:        c.GetString("gmail.auth_mode"),
		Query:           c.GetString("gmail.query"),
		MaxResults:      c.GetInt64("gmail.max_results"),
	}
}

// GetRules returns the local rule engine configuration
func (c *Config) GetRules() RulesConfig {
	return RulesConfig{
		BlockedDomains: c.GetStringSlice("rules.blocked_domains"),
		SurveyPhrases:  c.GetStringSlice("rules.survey_phrases"),
		SalesPhrases:   c.GetStringSlice("rules.sales_phrases"),
	}
}
