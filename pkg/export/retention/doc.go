// Package retention deletes stale export artifacts.
//
// A Pruner removes regular files in the output directory whose
// modification time is older than the configured maximum age. A Scheduler
// runs the pruner on a cron expression while the server is up; the
// "sheetport prune" command runs it once.
//
//	pruner := retention.NewPruner(cfg.Export.OutputDir, cfg.Export.Retention.MaxAge)
//	scheduler := retention.NewScheduler(pruner, cfg.Export.Retention.Schedule)
//	if err := scheduler.Start(ctx); err != nil {
//	    return err
//	}
//	defer scheduler.Stop()
package retention
