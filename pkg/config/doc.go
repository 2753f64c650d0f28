// Package config provides configuration management for sheetport.
//
// Configuration is loaded from a YAML file, completed with defaults,
// overridden from the environment and validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("sheetport.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SHEETPORT_SECTION_FIELD:
//
//   - SHEETPORT_EXPORT_OUTPUT_DIR overrides export.output_dir
//   - SHEETPORT_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - SHEETPORT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	cfg, err := config.Initialize("sheetport.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// elsewhere
//	cfg = config.GetConfig()
//
// Tests should pass explicit Config values instead.
//
// # Hot Reload
//
// Watch reloads the singleton when the file changes on disk:
//
//	w, _ := config.NewWatcher("sheetport.yaml", logger)
//	go w.Watch(ctx, func(cfg *config.Config) { ... })
//
// # Example Configuration
//
//	export:
//	  output_dir: "public/"
//	  default_format: "xlsx"
//	  unique_names: true
//	  retention:
//	    enabled: true
//	    max_age: "24h"
//	    schedule: "0 * * * *"
//
//	server:
//	  listen_address: "127.0.0.1:8080"
//
//	source:
//	  driver: "sqlite"
//	  path: "data/sheetport.db"
//	  seed: true
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
