package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"time"

	"github.com/mikey/inbox-triage/internal/config"
	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/factory"
	"github.com/mikey/inbox-triage/internal/logging"
	"github.com/mikey/inbox-triage/internal/rules"
	"github.com/mikey/inbox-triage/internal/utils"
	"go.uber.org/zap"
)

var (
	// LLM provider flags
	provider     = flag.String("provider", "gemini", "LLM provider (gemini, openai)")
	maxBodyChars = flag.Int("max-body-chars", 2000, "Maximum body characters to send to the LLM")
	maxAttempts  = flag.Int("max-attempts", 3, "Maximum LLM attempts per message")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-2.0-flash", "Gemini model name")

	// Chat-completion flags
	openaiAPIKey         = flag.String("openai-api-key", "", "API key for the chat-completion endpoint")
	openaiBaseURL        = flag.String("openai-base-url", "", "Base URL for OpenAI-compatible servers")
	openaiModelName      = flag.String("openai-model", "gpt-4o-mini", "Chat-completion model name")
	openaiResponseFormat = flag.String("openai-response-format", "json_object", "Response format mode (json_object, json_schema, text, none)")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
		if err := cfg.Validate(); err != nil {
			logger.Fatal("Invalid configuration", zap.Error(err))
		}
	}

	tp := utils.NewTextProcessor(logger)
	msg, err := readMessage(tp, cfg.GetLLM().MaxBodyChars)
	if err != nil {
		logger.Fatal("Failed to read email", zap.Error(err))
	}

	classifier, err := factory.NewLLMFactory(cfg, logger).CreateClassifier()
	if err != nil {
		logger.Fatal("Failed to create LLM classifier", zap.Error(err))
	}
	defer func() {
		if closer, ok := classifier.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to close LLM classifier", zap.Error(err))
			}
		}
	}()

	rulesCfg := cfg.GetRules()
	ruleEngine := rules.NewEngine(rulesCfg.BlockedDomains, rulesCfg.SurveyPhrases, rulesCfg.SalesPhrases, logger)

	llmCfg := cfg.GetLLM()
	service := core.NewTriageService(ruleEngine, classifier, logger, llmCfg.MaxAttempts, llmCfg.RetryBackoff)

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", msg.From)
	fmt.Printf("Subject: %s\n", msg.Subject)
	fmt.Printf("Body length: %d chars\n", len([]rune(msg.Body)))
	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Provider: %s\n", llmCfg.Provider)

	startTime := time.Now()
	verdict, err := service.ClassifyMessage(context.Background(), msg)
	if err != nil {
		logger.Fatal("Failed to classify email", zap.Error(err))
	}

	out, _ := json.Marshal(verdict)
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Label: %s\n", verdict.Label)
	fmt.Printf("Reason: %s\n", verdict.Reason)
	fmt.Printf("Processing time: %v\n", time.Since(startTime))
	fmt.Printf("%s\n", out)
}

// readMessage parses one RFC-5322 message from the input file or stdin and
// normalizes it the same way the Gmail adapter does.
func readMessage(tp *utils.TextProcessor, maxBodyChars int) (*core.Message, error) {
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		emailReader = file
	} else {
		emailReader = os.Stdin
	}

	parsed, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	bodyBytes, err := io.ReadAll(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read email body: %w", err)
	}

	body := tp.Normalize(string(bodyBytes), maxBodyChars)
	return &core.Message{
		From:    parsed.Header.Get("From"),
		Subject: parsed.Header.Get("Subject"),
		Date:    parsed.Header.Get("Date"),
		Snippet: tp.Truncate(body, 160),
		Body:    body,
	}, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)
	v.Set("llm.max_body_chars", *maxBodyChars)
	v.Set("llm.max_attempts", *maxAttempts)

	switch *provider {
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.base_url", *openaiBaseURL)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.response_format", *openaiResponseFormat)
	}

	return config.NewFromViper(v)
}
