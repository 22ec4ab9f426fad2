// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package lxc implements entity.Backend on top of the lxc-* command line
// tools. Configuration is edited in the container config file directly and
// written back on SaveConfig.
package lxc
