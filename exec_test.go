// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package sysctl_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/sysctl"
)

type execSuite struct {
	// CleanupSuite rather than IsolationSuite: the EchoQuotedArgs
	// script installed by PatchExecutableAsEchoArgs needs basename
	// and tee from the real PATH, which IsolationSuite clears.
	testing.CleanupSuite
}

var _ = gc.Suite(&execSuite{})

func (s *execSuite) TestRunSysctlInvokesBinary(c *gc.C) {
	testing.PatchExecutableAsEchoArgs(c, s, sysctl.Command)

	run := *sysctl.RunSysctl
	_, err := run("vm.swappiness=1", "vm.dirty_ratio=80")
	c.Assert(err, jc.ErrorIsNil)
	testing.AssertEchoArgs(c, sysctl.Command, "vm.swappiness=1", "vm.dirty_ratio=80")
}

func (s *execSuite) TestRunSysctlNonZeroExit(c *gc.C) {
	testing.PatchExecutableThrowError(c, s, sysctl.Command, 1)

	run := *sysctl.RunSysctl
	_, err := run("vm.swappiness=1")
	c.Assert(err, gc.NotNil)
	c.Check(sysctl.IsCommandError(err), jc.IsTrue)
	c.Check(err, gc.ErrorMatches, `sysctl vm.swappiness=1: exit status 1.*`)
}

func (s *execSuite) TestQuerySysctlTrimsValue(c *gc.C) {
	s.PatchValue(sysctl.RunSysctl, func(args ...string) ([]string, error) {
		c.Check(args, gc.DeepEquals, []string{"vm.swappiness", "-n"})
		return []string{" 60 "}, nil
	})
	value, err := sysctl.QuerySysctl("vm.swappiness")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(value, gc.Equals, "60")
}

func (s *execSuite) TestQuerySysctlNoOutput(c *gc.C) {
	s.PatchValue(sysctl.RunSysctl, func(args ...string) ([]string, error) {
		return nil, nil
	})
	_, err := sysctl.QuerySysctl("vm.swappiness")
	c.Check(err, gc.ErrorMatches, `no value reported for key "vm.swappiness"`)
}

func (s *execSuite) TestDeniedKeys(c *gc.C) {
	lines := []string{
		"vm.dirty_ratio = 80",
		`sysctl: permission denied on key "vm.swappiness", ignoring`,
		`sysctl: permission denied on key "vm.max_map_count", ignoring`,
		"something unrelated",
	}
	c.Check(sysctl.DeniedKeys(lines), gc.DeepEquals, []string{
		"vm.swappiness",
		"vm.max_map_count",
	})
}

func (s *execSuite) TestDeniedKeysNoMatches(c *gc.C) {
	c.Check(sysctl.DeniedKeys([]string{"vm.swappiness = 1"}), gc.HasLen, 0)
	c.Check(sysctl.DeniedKeys(nil), gc.HasLen, 0)
}
