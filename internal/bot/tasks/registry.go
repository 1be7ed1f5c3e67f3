package tasks

import "context"

// ScheduledTaskFunc is the signature of every scheduled task. The context is
// cancelled when the scheduler shuts down.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names as used under scheduler.tasks in the config.
const (
	TaskSQLMaintenance = "sql_maintenance"
	TaskQuoteRetention = "quote_retention"
	TaskSessionSweep   = "session_sweep"
)

// RegisterAllTasks returns the task registry keyed by config name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		TaskSQLMaintenance: newSQLMaintenanceTask(deps),
		TaskQuoteRetention: newQuoteRetentionTask(deps),
		TaskSessionSweep:   newSessionSweepTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
