// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the lxcui command line using Cobra. The root
// command runs the interactive container manager; the subcommands cover
// the same backend for scripts. CLI code stays thin and delegates to
// ui/views and the internal packages.
package cli
