// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/sysctl"
)

type listCommand struct {
	cmd.CommandBase
	dir string
}

func newListCommand() cmd.Command {
	return &listCommand{}
}

func (c *listCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "list",
		Purpose: "list the merged sysctl values",
		Doc: `
Prints every key=value pair in the merged file, one per line in key
order.
`,
	}
}

func (c *listCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.dir, "dir", sysctl.DefaultDirectory, "sysctl.d directory to operate on")
}

func (c *listCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

func (c *listCommand) Run(ctx *cmd.Context) error {
	cfg, err := sysctl.NewConfigFromDirectory(c.dir, "")
	if err != nil {
		return errors.Trace(err)
	}
	for _, key := range cfg.Keys() {
		value, _ := cfg.Value(key)
		fmt.Fprintf(ctx.Stdout, "%s=%s\n", key, value)
	}
	return nil
}
