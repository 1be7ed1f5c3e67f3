package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler is a handler together with how it is matched and the
// middleware that wraps it.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	// Description is shown in the Telegram command menu; empty hides it.
	Description string
}

// RegisterAllCommands returns every command handler keyed by command.
// Plain messages and photos go to NewMessageHandler instead, which is
// installed as the bot's default handler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	command := func(pattern, description string, h tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     h,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  mw,
			Description: description,
		}
	}

	return map[string]RegisteredHandler{
		"/start":   command("start", "Начать сначала", NewStartHandler(deps)),
		"/help":    command("help", "Как пользоваться", NewHelpHandler(deps)),
		"/new":     command("new", "Новый расчет", NewNewHandler(deps)),
		"/tariffs": command("tariffs", "Тарифы по категориям", NewTariffsHandler(deps)),
		"/history": command("history", "Последние расчеты", NewHistoryHandler(deps)),
		"/stats":   command("stats", "", NewStatsHandler(deps), AdminOnly(deps)),
	}
}
