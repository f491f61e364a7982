// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/sysctl"
)

type applyCommand struct {
	cmd.CommandBase
	name string
	dir  string
	file string
}

func newApplyCommand() cmd.Command {
	return &applyCommand{}
}

func (c *applyCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "apply",
		Args:    "<values.yaml>",
		Purpose: "apply sysctl values on behalf of an application",
		Doc: `
Reads the desired values from a YAML file of the form

    vm.swappiness:
      value: 1

validates them against values already persisted by other
applications, applies them to the running kernel and persists them
under the sysctl.d directory.
`,
	}
}

func (c *applyCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the application owning the values")
	f.StringVar(&c.dir, "dir", sysctl.DefaultDirectory, "sysctl.d directory to operate on")
}

func (c *applyCommand) Init(args []string) error {
	if c.name == "" {
		return errors.New("--name is required")
	}
	if len(args) == 0 {
		return errors.New("no values file specified")
	}
	c.file = args[0]
	return cmd.CheckEmpty(args[1:])
}

func (c *applyCommand) Run(ctx *cmd.Context) error {
	data, err := os.ReadFile(ctx.AbsPath(c.file))
	if err != nil {
		return errors.Trace(err)
	}
	values, err := sysctl.ParseConfig(data)
	if err != nil {
		return errors.Trace(err)
	}
	cfg, err := sysctl.NewConfigFromDirectory(c.dir, c.name)
	if err != nil {
		return errors.Trace(err)
	}
	if err := cfg.Update(values); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("applied %d sysctl values for %s", len(values), c.name)
	return nil
}
