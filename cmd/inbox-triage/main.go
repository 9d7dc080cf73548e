package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/inbox-triage/internal/adapters/gmail"
	"github.com/mikey/inbox-triage/internal/config"
	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/di"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run fetches recent inbox messages and classifies them one at a time. A
// backend failure on one message is reported and the loop moves on; an
// interrupt stops further iteration.
func run(
	cfg *config.Config,
	logger *zap.Logger,
	mailbox *gmail.Client,
	service *core.TriageService,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gmailCfg := cfg.GetGmail()
	logger.Info("Fetching inbox messages",
		zap.String("query", gmailCfg.Query),
		zap.Int64("max_results", gmailCfg.MaxResults),
		zap.String("provider", cfg.GetLLM().Provider))

	ids, err := mailbox.ListMessageIDs(ctx, gmailCfg.Query, gmailCfg.MaxResults)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			logger.Info("Interrupted, stopping iteration")
			break
		}

		msg, err := mailbox.FetchMessage(ctx, id)
		if err != nil {
			logger.Error("Failed to fetch message", zap.String("id", id), zap.Error(err))
			continue
		}

		verdict, err := service.ClassifyMessage(ctx, msg)
		if err != nil {
			logger.Error("Failed to classify message",
				zap.String("id", id),
				zap.String("sender", msg.From),
				zap.Error(err))
			continue
		}

		printVerdict(msg, verdict)
	}

	return nil
}

func printVerdict(msg *core.Message, verdict *core.Verdict) {
	tag := "legit ❎"
	if verdict.Label == core.LabelSpam {
		tag = "SPAM ⛔"
	}

	preview := msg.Snippet
	ellipsis := ""
	if runes := []rune(preview); len(runes) > 160 {
		preview = string(runes[:160])
		ellipsis = "…"
	}

	fmt.Printf("[%s] %s | %s | %s\n", tag, msg.Date, msg.From, msg.Subject)
	fmt.Printf("   reason: %s\n", verdict.Reason)
	fmt.Printf("   %s%s\n", preview, ellipsis)
}
