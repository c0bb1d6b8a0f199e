// Package logging provides logging utilities for hgssh4.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for operator diagnosis (via slog)
//   - User output: the single caller-visible error line
//
// Both go to stderr, which the SSH server forwards to the client.
// Debug logging is therefore off by default and only enabled when the
// operator adds --verbose to the forced-command line; the caller-visible
// line is shaped by internal/errors so denials are indistinguishable.
package logging
