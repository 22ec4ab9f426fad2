// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package entity defines what the user interface needs from a container
// backend and from the host, plus an in-memory implementation used by the
// demo mode and by tests.
package entity
