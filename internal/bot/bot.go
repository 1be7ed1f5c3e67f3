// Package bot wires the Telegram client, the webhook server and the
// scheduler together and runs them until shutdown.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/civilkabot/internal/config"
	"github.com/edgard/civilkabot/internal/database"
)

const shutdownTimeout = 10 * time.Second

// Bot owns the long-running components.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	store     database.Store
	tgBot     *tgbot.Bot
	scheduler *Scheduler
}

// NewBot creates the orchestrator.
func NewBot(logger *slog.Logger, cfg *config.Config, store database.Store, tgBot *tgbot.Bot, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		store:     store,
		tgBot:     tgBot,
		scheduler: scheduler,
	}
}

// Run receives updates (long polling or webhook) and runs the scheduler
// until ctx is cancelled or a component fails.
func (b *Bot) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	if b.cfg.Webhook.Enabled {
		g.Go(func() error { return b.runWebhook(gCtx) })
	} else {
		g.Go(func() error { return b.runPolling(gCtx) })
	}

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		<-gCtx.Done()
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot running", "webhook", b.cfg.Webhook.Enabled)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot stopped gracefully")
	return nil
}

func (b *Bot) runPolling(ctx context.Context) error {
	b.logger.Info("Starting long polling")
	b.tgBot.Start(ctx)

	if ctx.Err() == nil {
		return errors.New("telegram listener stopped unexpectedly")
	}
	b.logger.Info("Long polling stopped")
	return nil
}

func (b *Bot) runWebhook(ctx context.Context) error {
	wh := b.cfg.Webhook
	url := strings.TrimRight(wh.PublicURL, "/") + wh.Path

	if _, err := b.tgBot.SetWebhook(ctx, &tgbot.SetWebhookParams{
		URL:         url,
		SecretToken: wh.SecretToken,
	}); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	b.logger.Info("Webhook registered", "url", url)

	srv := &http.Server{
		Addr:              wh.ListenAddr,
		Handler:           NewWebhookRouter(b.logger, wh.Path, wh.SecretToken, b.tgBot, b.store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		b.logger.Info("Webhook server listening", "addr", wh.ListenAddr)
		serveErr <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("webhook server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		b.logger.Error("Webhook server shutdown failed", "error", err)
	}
	if _, err := b.tgBot.DeleteWebhook(shutdownCtx, &tgbot.DeleteWebhookParams{}); err != nil {
		b.logger.Warn("Failed to delete webhook", "error", err)
	}
	return runErr
}
