// Package logger builds the server's structured logger.
//
// Setup turns the configured server log level into a log/slog JSON handler and
// installs it as the process default, so packages that fall back to
// slog.Default() log in the same format as those handed a logger explicitly.
package logger
