// Package health exposes liveness, readiness and version endpoints for the
// sheetport server.
//
// Readiness runs the registered component checks concurrently, each bounded
// by a timeout. The server registers a "source" check that pings the
// database and an "output_dir" check that probes the export directory:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("source", health.PingCheck(db))
//	checker.Register("output_dir", health.WritableDirCheck(cfg.Export.OutputDir))
//	health.Mount(mux, checker, health.NewVersionInfo(version, commit, date))
package health
