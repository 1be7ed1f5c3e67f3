// Package config loads the bot configuration from a YAML file, a .env file
// and BOT_* environment variables, and validates it.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure returned by LoadConfig.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete bot configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Vision    VisionConfig    `mapstructure:"vision"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Dialogue  DialogueConfig  `mapstructure:"dialogue"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the admin account.
type TelegramConfig struct {
	Token       string `mapstructure:"token" validate:"required"`
	AdminUserID int64  `mapstructure:"admin_user_id" validate:"gte=0"`
	// BotInfo is filled at startup from getMe.
	BotInfo *models.User `mapstructure:"-"`
}

// WebhookConfig switches from long polling to an HTTP webhook.
type WebhookConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ListenAddr  string `mapstructure:"listen_addr" validate:"required_if=Enabled true"`
	PublicURL   string `mapstructure:"public_url" validate:"required_if=Enabled true,omitempty,url"`
	Path        string `mapstructure:"path" validate:"startswith=/"`
	SecretToken string `mapstructure:"secret_token"`
}

// VisionConfig selects the photo recognition backend.
type VisionConfig struct {
	Provider    string        `mapstructure:"provider" validate:"oneof=none gemini openai"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"min=1s,max=5m"`
	MaxImages   int           `mapstructure:"max_images" validate:"min=1,max=10"`
	Concurrency int           `mapstructure:"concurrency" validate:"min=1,max=10"`
	// BreakerFailures consecutive backend errors open the circuit for
	// BreakerCooldown. Zero disables the breaker.
	BreakerFailures int           `mapstructure:"breaker_failures" validate:"min=0,max=100"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown" validate:"min=0"`
	Gemini          GeminiConfig  `mapstructure:"gemini"`
	OpenAI          OpenAIConfig  `mapstructure:"openai"`
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	ModelName         string  `mapstructure:"model_name"`
	Temperature       float32 `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"min=0,max=60"`
	BaseURL           string  `mapstructure:"base_url" validate:"omitempty,url"`
}

// OpenAIConfig configures the OpenAI compatible backend.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// DatabaseConfig configures the quote journal.
type DatabaseConfig struct {
	Path               string `mapstructure:"path" validate:"required"`
	QuoteRetentionDays int    `mapstructure:"quote_retention_days" validate:"min=0"`
	HistoryLimit       int    `mapstructure:"history_limit" validate:"min=1,max=50"`
}

// DialogueConfig tunes the conversation.
type DialogueConfig struct {
	SessionTTL         time.Duration `mapstructure:"session_ttl" validate:"min=0"`
	MediaGroupDebounce time.Duration `mapstructure:"media_group_debounce" validate:"min=100ms,max=30s"`
	DriverOver30       bool          `mapstructure:"driver_over_30"`
}

// SchedulerConfig lists scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task on a cron schedule (seconds field optional).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds texts sent by command handlers.
type MessagesConfig struct {
	Welcome              string `mapstructure:"welcome" validate:"required"`
	Help                 string `mapstructure:"help" validate:"required"`
	Analyzing            string `mapstructure:"analyzing" validate:"required"`
	TariffsHeader        string `mapstructure:"tariffs_header" validate:"required"`
	HistoryEmptyMsg      string `mapstructure:"history_empty_msg" validate:"required"`
	ErrorGeneralMsg      string `mapstructure:"error_general_msg" validate:"required"`
	ErrorUnauthorizedMsg string `mapstructure:"error_unauthorized_msg" validate:"required"`
	UnsupportedMsg       string `mapstructure:"unsupported_msg" validate:"required"`
}

// LoadConfig reads configuration from path (missing file is allowed), a .env
// file in the working directory and BOT_* environment variables, in
// increasing priority, then validates the result.
func LoadConfig(path string) (*Config, error) {
	// a missing .env is the normal case in production
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.Vision.Provider {
	case "gemini":
		if c.Vision.Gemini.APIKey == "" || c.Vision.Gemini.ModelName == "" {
			return fmt.Errorf("%w: vision.gemini.api_key and vision.gemini.model_name are required for the gemini provider", ErrInvalid)
		}
	case "openai":
		if c.Vision.OpenAI.APIKey == "" || c.Vision.OpenAI.Model == "" {
			return fmt.Errorf("%w: vision.openai.api_key and vision.openai.model are required for the openai provider", ErrInvalid)
		}
	}
	return nil
}
