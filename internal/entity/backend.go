// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package entity

import (
	"context"
	"os/exec"
	"strconv"
	"time"
)

// Config keys the editors read and write.
const (
	KeyNetwork     = "lxc.network"
	KeyMemoryLimit = "lxc.cgroup.memory.limit_in_bytes"
	KeyCPUSet      = "lxc.cgroup.cpuset.cpus"
	KeyCPUShares   = "lxc.cgroup.cpu.shares"
	KeyTTY         = "lxc.tty"
	KeyStartAuto   = "lxc.start.auto"
	KeyStartDelay  = "lxc.start.delay"
	KeyStartOrder  = "lxc.start.order"
)

// NetworkProps are the per-interface properties in the order the
// interfaces editor applies them.
var NetworkProps = []string{"type", "link", "flags", "name", "hwaddr", "ipv4"}

// LimitKeys are the keys of the limits editor in display order.
var LimitKeys = []string{
	KeyMemoryLimit,
	KeyCPUSet,
	KeyCPUShares,
	KeyTTY,
	KeyStartAuto,
	KeyStartDelay,
	KeyStartOrder,
}

// NetworkKey returns the key of property prop of interface index, or the
// whole interface section when prop is empty.
func NetworkKey(index int, prop string) string {
	if prop == "" {
		return KeyNetwork + "." + strconv.Itoa(index)
	}
	return KeyNetwork + "." + strconv.Itoa(index) + "." + prop
}

type Backend interface {
	// --- Enumeration ---

	List(ctx context.Context) ([]Summary, error)

	// RootPath is the directory whose size is shown for name.
	RootPath(name string) string

	// --- Configuration ---

	// GetConfig returns every value of key. KeyNetwork yields one entry per
	// configured interface.
	GetConfig(ctx context.Context, name, key string) ([]string, error)

	SetConfig(ctx context.Context, name, key, value string) error

	// ClearConfig removes key and, for a section such as lxc.network.1,
	// every key below it.
	ClearConfig(ctx context.Context, name, key string) error

	SaveConfig(ctx context.Context, name string) error

	// --- Lifecycle ---

	Create(ctx context.Context, name string, tmpl Template) error

	Start(ctx context.Context, name string) error

	Stop(ctx context.Context, name string) error

	Freeze(ctx context.Context, name string) error

	Unfreeze(ctx context.Context, name string) error

	Destroy(ctx context.Context, name string) error

	Clone(ctx context.Context, name, newName string) error

	Rename(ctx context.Context, name, newName string) error

	WaitForState(ctx context.Context, name string, state State, timeout time.Duration) (bool, error)

	// Attach returns a command that runs args inside name. The caller hands
	// the terminal over to it.
	Attach(name string, args ...string) *exec.Cmd

	// --- Snapshots ---

	ListSnapshots(ctx context.Context, name string) ([]Snapshot, error)

	TakeSnapshot(ctx context.Context, name string) error

	RestoreSnapshot(ctx context.Context, name, id string) error

	DestroySnapshot(ctx context.Context, name, id string) error
}

// Host answers questions about the machine the containers run on.
type Host interface {
	NetworkInterfaces() ([]string, error)
	CachedTemplates() ([]Template, error)
	CPUCores() int
	ReleaseInfo(path string) (string, error)
}

// First returns the first value of a GetConfig result.
func First(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
