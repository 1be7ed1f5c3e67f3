package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTariffsHandler returns a handler for /tariffs [category or vehicle type].
func NewTariffsHandler(deps HandlerDeps) bot.HandlerFunc {
	return tariffsHandler{deps}.Handle
}

type tariffsHandler struct {
	deps HandlerDeps
}

func (h tariffsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := FormatTariffs(h.deps.Config.Messages.TariffsHeader, h.deps.Tariffs)
	if args := commandArgs(update.Message.Text); args != "" {
		text = FormatVehicleTariff(h.deps.Tariffs, args)
	}
	sendText(ctx, b, h.deps, update.Message.Chat.ID, text)
}
