package handlers

import (
	"log/slog"

	"github.com/edgard/civilkabot/internal/config"
	"github.com/edgard/civilkabot/internal/database"
	"github.com/edgard/civilkabot/internal/dialogue"
	"github.com/edgard/civilkabot/internal/tariff"
	"github.com/edgard/civilkabot/internal/vision"
)

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	Engine  *dialogue.Engine
	Tariffs *tariff.Table
	// Vision is nil when photo recognition is disabled.
	Vision vision.Analyzer
}
