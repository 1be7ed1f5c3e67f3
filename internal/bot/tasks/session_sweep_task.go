package tasks

import "context"

func newSessionSweepTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskSessionSweep)

	return func(ctx context.Context) error {
		if deps.Sessions == nil {
			return nil
		}
		evicted := deps.Sessions.Sweep()
		log.DebugContext(ctx, "Idle sessions swept", "evicted", evicted, "remaining", deps.Sessions.Len())
		return nil
	}
}
