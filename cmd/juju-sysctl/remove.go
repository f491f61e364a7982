// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/sysctl"
)

type removeCommand struct {
	cmd.CommandBase
	name string
	dir  string
}

func newRemoveCommand() cmd.Command {
	return &removeCommand{}
}

func (c *removeCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "remove",
		Purpose: "remove an application's sysctl values",
		Doc: `
Deletes the application's own sysctl file and regenerates the merged
file from the remaining applications. Live kernel values are not
reverted; the removed keys simply stop being applied at boot.
`,
	}
}

func (c *removeCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the application whose values to remove")
	f.StringVar(&c.dir, "dir", sysctl.DefaultDirectory, "sysctl.d directory to operate on")
}

func (c *removeCommand) Init(args []string) error {
	if c.name == "" {
		return errors.New("--name is required")
	}
	return cmd.CheckEmpty(args)
}

func (c *removeCommand) Run(ctx *cmd.Context) error {
	cfg, err := sysctl.NewConfigFromDirectory(c.dir, c.name)
	if err != nil {
		return errors.Trace(err)
	}
	if err := cfg.Remove(); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("removed sysctl values for %s", c.name)
	return nil
}
