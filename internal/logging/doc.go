// Package logging builds the zerolog loggers used across albayan.
//
// A logger is created once per command invocation from a Config, then carried
// on the context. Every invocation gets a ULID trace ID that is attached to
// each event logged with Ctx(ctx), so the lines of a single run can be
// correlated in a shared log file.
//
// Output goes to stderr (console or JSON) or to a file. When the file cannot
// be opened the logger falls back to stderr and reports why through
// LogPathResult so the CLI can warn the user.
package logging
