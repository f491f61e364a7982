// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package sysctl reconciles kernel tunable parameters requested by
// multiple applications running on the same machine.
//
// Each application owns a file under /etc/sysctl.d named
// 90-juju-<name>, listing only the key=value pairs that application
// has requested. A single merged file, 95-juju-sysctl.conf, is
// regenerated from all per-application files after every change so
// the full set of requested values survives a reboot.
//
// Update validates the requested values against what other
// applications have already persisted, snapshots the live values of
// the affected keys, applies the new values with the sysctl binary,
// and rolls the snapshot back if the kernel refuses any of them.
// Remove deletes the application's own file and regenerates the
// merged file; live values are left alone.
//
// A typical desired configuration, as declared in a charm template:
//
//	vm.swappiness:
//	  value: 1
//	net.ipv4.tcp_max_syn_backlog:
//	  value: 4096
//
// There is no locking between applications. Two concurrent updates
// can race on the merged file; the last writer wins.
package sysctl
