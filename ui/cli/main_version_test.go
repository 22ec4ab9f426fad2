// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"runtime/debug"
	"testing"

	"github.com/toeirei/lxcui/buildvars"
)

func TestResolveBuildVersion_MainVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/lxcui", Version: "v1.2.3"},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected v1.2.3 got %s", v)
	}
	if c != gitCommit {
		t.Fatalf("expected commit to equal package gitCommit (default) got %s", c)
	}
	if d != buildDate {
		t.Fatalf("expected date to equal package buildDate (default) got %s", d)
	}
}

func TestResolveBuildVersion_DependencyFallback(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/lxcui", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/toeirei/lxcui", Version: "v1.5.1-0.20251130131337-d1692e4643ee"},
		},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v1.5.1-0.20251130131337-d1692e4643ee" {
		t.Fatalf("expected dependency version fallback got %s", v)
	}
}

func TestResolveBuildVersion_GitCommitFallback(t *testing.T) {
	// preserve original
	orig := gitCommit
	defer func() { gitCommit = orig }()
	gitCommit = "deadbeef"
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/lxcui", Version: "(devel)"},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "deadbeef" {
		t.Fatalf("expected gitCommit fallback got %s", v)
	}
}

func TestResolveBuildVersion_LinkerVersionWins(t *testing.T) {
	orig := buildvars.Version
	defer func() { buildvars.Version = orig }()
	buildvars.Version = "v2.0.0"
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/toeirei/lxcui", Version: "v1.2.3"},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v2.0.0" {
		t.Fatalf("expected link-time version got %s", v)
	}
}
