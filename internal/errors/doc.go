// Package errors provides error handling conventions for the airules CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions. Wrapping helpers ([Wrap], [Newf],
// [Is], [As]) delegate to github.com/cockroachdb/errors.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown agent, bad flag, bad config)
//   - ExitSystem (2): System-related error (missing template catalog, I/O)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(agent.ErrUnknownAgent, "Run 'airules agents' to see valid agents")
//	os.Exit(errors.ExitCode(err))
//
// Template content problems (unknown conditions, unterminated blocks) are
// never reported as errors; see package render.
package errors
