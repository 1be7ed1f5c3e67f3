package tasks

import (
	"context"
	"fmt"
	"time"
)

// newQuoteRetentionTask deletes journaled quotes older than
// database.quote_retention_days. Zero days keeps everything.
func newQuoteRetentionTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskQuoteRetention)

	return func(ctx context.Context) error {
		days := deps.Config.Database.QuoteRetentionDays
		if days <= 0 {
			log.DebugContext(ctx, "Quote retention disabled")
			return nil
		}

		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		deleted, err := deps.Store.DeleteQuotesBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("quote retention failed: %w", err)
		}
		log.InfoContext(ctx, "Old quotes deleted", "deleted", deleted, "cutoff", cutoff.Format(time.DateOnly))
		return nil
	}
}
