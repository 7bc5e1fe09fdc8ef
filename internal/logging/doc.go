// Package logging provides structured logging with per-module log level configuration.
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"executor": "debug",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("monitor")
//	logger.Info("Snapshot taken", "processes", 3)
//
// Logs go to stderr by default so command output on stdout stays clean.
// The TUI points Output at a file or io.Discard while it owns the terminal.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	executor = "debug"
package logging
