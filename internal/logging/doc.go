// Package logging provides structured logging for the airules CLI using slog.
//
// The package supports text and JSON output, a TRACE level below Debug for
// per-block render decisions, and a context-carried logger so the render and
// assembly layers log through whatever the root command configured.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	ctx := logging.NewContext(ctx, logger)
//
// For tests, use [ForTest] to capture log output via the testing framework.
package logging
