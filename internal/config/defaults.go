package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultWelcome = "👋 Привет! Я помогу рассчитать стоимость автоцивилки (ОСЦПВ).\n\n" +
		"Напиши марку, модель, год и объем двигателя, например: «BMW X3 2015 1998 см3», " +
		"или пришли фото техпаспорта."
	defaultHelp = "ℹ️ Как пользоваться:\n" +
		"• напиши данные авто текстом: марка, модель, год, объем двигателя\n" +
		"• или пришли фото техпаспорта (можно несколько страниц альбомом)\n\n" +
		"Команды:\n" +
		"/new - новый расчет\n" +
		"/tariffs - тарифы по категориям (/tariffs A, /tariffs B ...)\n" +
		"/history - последние расчеты"
	defaultAnalyzing       = "🔍 Анализирую документ..."
	defaultTariffsHeader   = "📋 Тарифы ОСЦПВ"
	defaultHistoryEmpty    = "📭 У тебя пока нет расчетов."
	defaultErrorGeneral    = "😔 Что-то пошло не так. Попробуй еще раз чуть позже."
	defaultUnauthorized    = "⛔ Эта команда доступна только администратору."
	defaultUnsupportedType = "🤷 Я понимаю только текст и фото документов."
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	// keys without a default are invisible to Unmarshal unless bound
	for _, key := range []string{
		"telegram.token",
		"telegram.admin_user_id",
		"webhook.public_url",
		"webhook.secret_token",
		"vision.gemini.api_key",
		"vision.openai.api_key",
		"vision.openai.base_url",
	} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("webhook.enabled", false)
	v.SetDefault("webhook.listen_addr", ":8080")
	v.SetDefault("webhook.path", "/webhook")

	v.SetDefault("vision.provider", "none")
	v.SetDefault("vision.timeout", 60*time.Second)
	v.SetDefault("vision.max_images", 5)
	v.SetDefault("vision.concurrency", 3)
	v.SetDefault("vision.breaker_failures", 5)
	v.SetDefault("vision.breaker_cooldown", time.Minute)
	v.SetDefault("vision.gemini.model_name", "gemini-2.0-flash")
	v.SetDefault("vision.gemini.temperature", 0.1)
	v.SetDefault("vision.gemini.max_retries", 3)
	v.SetDefault("vision.gemini.retry_delay_seconds", 2)
	v.SetDefault("vision.gemini.base_url", "")
	v.SetDefault("vision.openai.model", "gpt-4o")

	v.SetDefault("database.path", "storage.db")
	v.SetDefault("database.quote_retention_days", 365)
	v.SetDefault("database.history_limit", 5)

	v.SetDefault("dialogue.session_ttl", 30*time.Minute)
	v.SetDefault("dialogue.media_group_debounce", 2*time.Second)
	v.SetDefault("dialogue.driver_over_30", true)

	v.SetDefault("scheduler.tasks", map[string]any{
		"sql_maintenance": map[string]any{"enabled": true, "schedule": "0 3 * * 0"},
		"quote_retention": map[string]any{"enabled": true, "schedule": "30 3 * * *"},
		"session_sweep":   map[string]any{"enabled": true, "schedule": "*/10 * * * *"},
	})

	v.SetDefault("messages.welcome", defaultWelcome)
	v.SetDefault("messages.help", defaultHelp)
	v.SetDefault("messages.analyzing", defaultAnalyzing)
	v.SetDefault("messages.tariffs_header", defaultTariffsHeader)
	v.SetDefault("messages.history_empty_msg", defaultHistoryEmpty)
	v.SetDefault("messages.error_general_msg", defaultErrorGeneral)
	v.SetDefault("messages.error_unauthorized_msg", defaultUnauthorized)
	v.SetDefault("messages.unsupported_msg", defaultUnsupportedType)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
