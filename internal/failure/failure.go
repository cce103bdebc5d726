// Package failure holds the error taxonomy shared by every stage of a bot run.
// None of these are recovered locally, they abort the run and are returned to the caller.
package failure

import (
	"fmt"
	"strings"
)

// ConfigError is returned when required configuration is missing.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// TransportError is returned when an HTTP exchange could not complete.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a page's response cannot be tokenized.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s's response: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UpstreamFormatError is returned when a well-formed page does not contain
// the content the scrapers depend on.
type UpstreamFormatError struct {
	Source string
	Reason string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("unexpected %s page format: %s", e.Source, e.Reason)
}
