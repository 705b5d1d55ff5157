package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks malformed user input: an unparseable CIDR string or
// an input document that does not decode as a configuration tree. Errors of
// this class abort the run before any output is produced.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports every required field that did not resolve after
// the merge and adjust passes. Validation is cumulative: all failing fields
// are collected in one pass so the operator can fix them together.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required configuration not present: %s", strings.Join(e.Missing, ", "))
}
