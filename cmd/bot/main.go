package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"goldpan/internal/auth"
	"goldpan/internal/config"
	"goldpan/internal/llm"
	"goldpan/internal/session"
	"goldpan/internal/sheetlog"
	"goldpan/internal/summary"
	"goldpan/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	ctx := context.Background()

	authSvc := auth.New(cfg.AllowedUsers, cfg.AdminUserID)

	model := modelFor(cfg)
	if !llm.IsModelAllowed(model) {
		log.Printf("⚠️ model %q is not in the allowed list, proceeding anyway", model)
	}
	llmClient, err := llm.NewFactory(cfg).CreateClient(ctx, string(cfg.LLMProvider), model)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	// The connector opens the sheet lazily on first use and keeps the
	// outcome for the process lifetime.
	connector := sheetlog.NewConnector(func(ctx context.Context) (sheetlog.RowStore, error) {
		creds, err := loadCredentials(cfg)
		if err != nil {
			return nil, err
		}
		return sheetlog.OpenSheet(ctx, creds, cfg.SpreadsheetID, cfg.SheetName)
	})
	writer := sheetlog.NewWriter(connector)
	reader := sheetlog.NewReader(connector)

	flow := session.New(writer, llmClient)

	bot, err := telegram.New(cfg.TelegramBotToken, authSvc, flow, reader, cfg.AdminUserID, cfg.MessageParseMode)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.DigestEnabled {
		sched := summary.NewScheduler(cfg.DigestCron)
		sched.SetReportFunction(bot.DailyDigest)
		if err := sched.Start(); err != nil {
			log.Printf("failed to start digest scheduler: %v", err)
		}
		defer sched.Stop()
	}

	bot.Start(ctx)
}

func modelFor(cfg *config.Config) string {
	if cfg.LLMProvider == config.ProviderOpenAI {
		return cfg.OpenAIModel
	}
	return cfg.GeminiModel
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	if cfg.GoogleCredentialsJSON != "" {
		return []byte(cfg.GoogleCredentialsJSON), nil
	}
	data, err := os.ReadFile(cfg.GoogleCredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account credentials: %w", err)
	}
	return data, nil
}
