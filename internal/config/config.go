package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AllowedUsers     []int64 `env:"ALLOWED_USERS" envSeparator:":"`
	AdminUserID      int64   `env:"ADMIN_USER"`

	// LLM settings
	LLMProvider   LLMProvider `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string      `env:"GEMINI_API_KEY"`
	GeminiModel   string      `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey  string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string      `env:"OPENAI_BASE_URL"`
	OpenAIModel   string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Sheets log backend
	GoogleCredentialsPath string `env:"GOOGLE_CREDENTIALS_PATH" envDefault:"data/service_account.json"`
	GoogleCredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON"`
	SpreadsheetID         string `env:"SPREADSHEET_ID"`
	SheetName             string `env:"SHEET_NAME" envDefault:"log"`

	// Daily digest
	DigestEnabled bool   `env:"DIGEST_ENABLED" envDefault:"false"`
	DigestCron    string `env:"DIGEST_CRON" envDefault:"0 21 * * *"`

	// Formatting
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
