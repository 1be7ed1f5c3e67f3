package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewNewHandler returns a handler for /new, which starts a fresh calculation.
func NewNewHandler(deps HandlerDeps) bot.HandlerFunc {
	return newHandler{deps}.Handle
}

type newHandler struct {
	deps HandlerDeps
}

func (h newHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	reply := h.deps.Engine.StartOver(update.Message.From.ID)
	sendText(ctx, b, h.deps, update.Message.Chat.ID, reply.Text)
}
