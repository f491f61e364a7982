// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package sysctl

import (
	"os/exec"
	"regexp"
	"strings"

	"github.com/juju/errors"
	"github.com/kballard/go-shellquote"
)

// Command is the name of the kernel parameter binary, resolved
// through PATH.
const Command = "sysctl"

// permissionDeniedRE matches the per-key refusal the binary prints
// while continuing with the remaining keys in the same call.
var permissionDeniedRE = regexp.MustCompile(`^sysctl: permission denied on key "([a-z_.]+)", ignoring$`)

// runSysctl executes the binary and returns its combined output split
// into lines. A non-zero exit wraps the output in a *CommandError.
// It is a variable so tests can substitute the process execution.
var runSysctl = func(args ...string) ([]string, error) {
	logger.Debugf("executing: %s %s", Command, shellquote.Join(args...))
	out, err := exec.Command(Command, args...).CombinedOutput()
	lines := outputLines(string(out))
	if err != nil {
		return lines, &CommandError{Args: args, Output: string(out), Err: err}
	}
	return lines, nil
}

// applySysctl runs one combined invocation with the given key=value
// assignments. The output lines are returned even on failure, so the
// caller can classify per-key refusals before trusting the exit
// status.
func applySysctl(assignments []string) ([]string, error) {
	return runSysctl(assignments...)
}

// querySysctl returns the current live value for one key.
func querySysctl(key string) (string, error) {
	lines, err := runSysctl(key, "-n")
	if err != nil {
		return "", errors.Trace(err)
	}
	if len(lines) == 0 {
		return "", errors.Errorf("no value reported for key %q", key)
	}
	return strings.TrimSpace(lines[0]), nil
}

// deniedKeys extracts the keys named in permission refusal lines.
func deniedKeys(lines []string) []string {
	var keys []string
	for _, line := range lines {
		if match := permissionDeniedRE.FindStringSubmatch(line); match != nil {
			keys = append(keys, match[1])
		}
	}
	return keys
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
