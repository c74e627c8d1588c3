// Package logging builds the slog loggers used by the gamecat CLI.
//
// Records go to a human friendly console handler (or JSON when configured) and,
// when a log directory is configured, are duplicated as JSON lines into
// gamecat.log. Context helpers stamp entry ids, pipeline stages and the
// per-invocation correlation id onto every record.
package logging
