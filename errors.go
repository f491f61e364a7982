// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package sysctl

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/kballard/go-shellquote"
)

// ValidationError reports desired keys whose values disagree with
// what another application has already persisted.
type ValidationError struct {
	Keys []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for keys: %s", strings.Join(e.Keys, ", "))
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// PermissionError reports keys the kernel refused to set.
type PermissionError struct {
	Keys []string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied setting keys: %s", strings.Join(e.Keys, ", "))
}

// IsPermissionError reports whether err is a *PermissionError.
func IsPermissionError(err error) bool {
	_, ok := errors.Cause(err).(*PermissionError)
	return ok
}

// CommandError reports a failed sysctl invocation, carrying the
// combined output the binary produced before exiting.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("sysctl %s: %v", shellquote.Join(e.Args...), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError reports whether err is a *CommandError.
func IsCommandError(err error) bool {
	_, ok := errors.Cause(err).(*CommandError)
	return ok
}
