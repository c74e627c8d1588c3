package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gamecat/internal/services"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const ansiReset = "\x1b[0m"

// statusStyles maps each kind to its bracketed label and ANSI colour.
var statusStyles = map[statusKind]struct{ label, color string }{
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

// renderStatusLine formats "label:      [KIND] message", padding the label so
// consecutive lines align.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	line := fmt.Sprintf("%-12s [%s]", label+":", style.label)
	if message != "" {
		line += " " + message
	}
	if colorize {
		line = style.color + line + ansiReset
	}
	return line
}

// outcomeStatus shows caller mistakes and misses as warnings and everything
// else that failed as an error.
func outcomeStatus(outcome services.Outcome) statusKind {
	switch outcome.Kind {
	case services.OutcomeSuccess:
		return statusOK
	case services.OutcomeNotFound, services.OutcomeValidation:
		return statusWarn
	default:
		return statusError
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// commandResult is the JSON document every command emits with --json.
type commandResult struct {
	Outcome services.Outcome `json:"outcome"`
	Result  any              `json:"result,omitempty"`
}

// finish prints the definite outcome of a command and passes err through so
// failures exit non-zero. body, when set, renders the human-readable result
// before the outcome line.
func (c *commandContext) finish(cmd *cobra.Command, label string, outcome services.Outcome, result any, body func(io.Writer), err error) error {
	out := cmd.OutOrStdout()
	if c.jsonOutput() {
		if werr := writeJSON(cmd, commandResult{Outcome: outcome, Result: result}); werr != nil {
			return werr
		}
		return err
	}
	if body != nil {
		body(out)
	}
	fmt.Fprintln(out, renderStatusLine(label, outcomeStatus(outcome), outcome.Message, shouldColorize(out)))
	return err
}

func (c *commandContext) fail(cmd *cobra.Command, label string, err error) error {
	return c.finish(cmd, label, services.Failure(err), nil, nil, err)
}

func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}
