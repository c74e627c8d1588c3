package services

import (
	"errors"
	"fmt"
	"strings"
)

// Markers classify failures for callers. Match them with errors.Is.
var (
	ErrTransient     = errors.New("transient failure")
	ErrNotFound      = errors.New("not found")
	ErrStorage       = errors.New("storage error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap tags err with marker and prefixes the non-empty parts of
// stage/operation/message. A nil marker means ErrTransient; a nil err yields a
// marker-only error.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	var parts []string
	for _, part := range []string{stage, operation, message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	detail := "service failure"
	if len(parts) > 0 {
		detail = strings.Join(parts, ": ")
	}
	if err == nil {
		return fmt.Errorf("%w: %s", marker, detail)
	}
	return fmt.Errorf("%w: %s: %w", marker, detail, err)
}
