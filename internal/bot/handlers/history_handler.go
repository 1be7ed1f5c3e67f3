package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHistoryHandler returns a handler for /history, the user's recent quotes.
func NewHistoryHandler(deps HandlerDeps) bot.HandlerFunc {
	return historyHandler{deps}.Handle
}

type historyHandler struct {
	deps HandlerDeps
}

func (h historyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "history")
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID, userID := update.Message.Chat.ID, update.Message.From.ID

	dbCtx, cancel := context.WithTimeout(ctx, dbReadTimeout)
	quotes, err := h.deps.Store.GetRecentQuotes(dbCtx, userID, h.deps.Config.Database.HistoryLimit)
	cancel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load quote history", "error", err, "user_id", userID)
		sendText(ctx, b, h.deps, chatID, h.deps.Config.Messages.ErrorGeneralMsg)
		return
	}

	if len(quotes) == 0 {
		sendText(ctx, b, h.deps, chatID, h.deps.Config.Messages.HistoryEmptyMsg)
		return
	}
	sendText(ctx, b, h.deps, chatID, FormatHistory(quotes, nil))
}
