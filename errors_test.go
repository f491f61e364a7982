// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package sysctl_test

import (
	stderrors "errors"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/sysctl"
)

type errorsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&errorsSuite{})

func (s *errorsSuite) TestValidationError(c *gc.C) {
	err := error(&sysctl.ValidationError{Keys: []string{"vm.swappiness", "vm.dirty_ratio"}})
	c.Check(err, gc.ErrorMatches, "validation error for keys: vm.swappiness, vm.dirty_ratio")
	c.Check(sysctl.IsValidationError(err), jc.IsTrue)
	c.Check(sysctl.IsValidationError(errors.Trace(err)), jc.IsTrue)
	c.Check(sysctl.IsPermissionError(err), jc.IsFalse)
}

func (s *errorsSuite) TestPermissionError(c *gc.C) {
	err := error(&sysctl.PermissionError{Keys: []string{"vm.swappiness"}})
	c.Check(err, gc.ErrorMatches, "permission denied setting keys: vm.swappiness")
	c.Check(sysctl.IsPermissionError(err), jc.IsTrue)
	c.Check(sysctl.IsPermissionError(errors.Trace(err)), jc.IsTrue)
	c.Check(sysctl.IsValidationError(err), jc.IsFalse)
}

func (s *errorsSuite) TestCommandError(c *gc.C) {
	cause := stderrors.New("exit status 255")
	err := error(&sysctl.CommandError{
		Args:   []string{"vm.swappiness=1"},
		Output: "sysctl: cannot stat /proc/sys/vm/swappiness\n",
		Err:    cause,
	})
	c.Check(err, gc.ErrorMatches,
		`sysctl vm.swappiness=1: exit status 255: sysctl: cannot stat /proc/sys/vm/swappiness`)
	c.Check(sysctl.IsCommandError(err), jc.IsTrue)
	c.Check(stderrors.Is(err, cause), jc.IsTrue)
}

func (s *errorsSuite) TestIsPredicatesNilAndOther(c *gc.C) {
	c.Check(sysctl.IsValidationError(nil), jc.IsFalse)
	c.Check(sysctl.IsPermissionError(stderrors.New("boom")), jc.IsFalse)
	c.Check(sysctl.IsCommandError(stderrors.New("boom")), jc.IsFalse)
}
