// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for lxcui.
//
// Usage:
//
//	go run . [flags]
//	./lxcui [flags]
//
// This launches the container list. See --help for subcommands.
package main

import (
	"log"
	"os"

	"github.com/toeirei/lxcui/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("lxcui: %v", err)
		os.Exit(1)
	}
}
