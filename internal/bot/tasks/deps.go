// Package tasks implements the scheduled maintenance jobs.
package tasks

import (
	"log/slog"

	"github.com/edgard/civilkabot/internal/config"
	"github.com/edgard/civilkabot/internal/database"
	"github.com/edgard/civilkabot/internal/dialogue"
)

// TaskDeps contains the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Sessions *dialogue.Store
	Config   *config.Config
}
