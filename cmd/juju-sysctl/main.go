// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"os"

	"github.com/juju/cmd/v3"
)

var mainDoc = `
juju-sysctl maintains kernel parameter requests from multiple
applications under /etc/sysctl.d. Each application's request is kept
in its own 90-juju-<name> file, merged into a single
95-juju-sysctl.conf, checked for conflicts across applications, and
applied to the running kernel.
`

// Main provides an entry point for testing with arbitrary command
// line arguments.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return cmd.Main(newSuperCommand(), ctx, args[1:])
}

func newSuperCommand() cmd.Command {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name: "juju-sysctl",
		Doc:  mainDoc,
		Log:  &cmd.Log{},
	})
	super.Register(newApplyCommand())
	super.Register(newRemoveCommand())
	super.Register(newListCommand())
	return super
}

func main() {
	os.Exit(Main(os.Args))
}
