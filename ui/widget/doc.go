// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package widget is a small retained-mode terminal toolkit.
//
// Widgets own a Surface and paint themselves onto a Canvas. A Dialog runs an
// ordered set of widgets to completion: it reads one Key at a time, moves the
// focus, dispatches to the focused widget or a hotkey handler and returns a
// Result once the user confirms or cancels.
//
// The package knows nothing about containers or terminals. Concrete keys are
// translated into symbolic ones by the terminal layer, and the View composer
// decides what a Result means.
package widget
