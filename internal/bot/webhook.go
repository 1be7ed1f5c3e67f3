package bot

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-telegram/bot/models"
)

// SecretTokenHeader carries the webhook secret set with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

const (
	maxUpdateBytes = 1 << 20
	healthTimeout  = 2 * time.Second
)

// UpdateProcessor runs one update through the registered handlers.
// *bot.Bot implements it.
type UpdateProcessor interface {
	ProcessUpdate(ctx context.Context, upd *models.Update)
}

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewWebhookRouter serves Telegram updates on path and a health check on
// /healthz. An empty secret disables the secret header check.
func NewWebhookRouter(logger *slog.Logger, path, secret string, updates UpdateProcessor, db Pinger) http.Handler {
	log := logger.With("component", "webhook")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post(path, func(w http.ResponseWriter, req *http.Request) {
		if secret != "" && subtle.ConstantTimeCompare([]byte(req.Header.Get(SecretTokenHeader)), []byte(secret)) != 1 {
			log.WarnContext(req.Context(), "Webhook request with bad secret", "remote_addr", req.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var update models.Update
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxUpdateBytes)).Decode(&update); err != nil {
			log.WarnContext(req.Context(), "Invalid webhook payload", "error", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		// handlers may outlive the request
		updates.ProcessUpdate(context.WithoutCancel(req.Context()), &update)
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), healthTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.ErrorContext(ctx, "Health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
