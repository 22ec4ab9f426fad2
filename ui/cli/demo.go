// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"runtime"

	"github.com/toeirei/lxcui/internal/entity"
)

// demoBackend is a small in-memory host for --demo.
func demoBackend() (*entity.Fake, *entity.FakeHost) {
	iface := func(link, name, ip string) map[string][]string {
		return map[string][]string{
			entity.NetworkKey(0, "type"):  {"veth"},
			entity.NetworkKey(0, "link"):  {link},
			entity.NetworkKey(0, "flags"): {"up"},
			entity.NetworkKey(0, "name"):  {name},
			entity.NetworkKey(0, "ipv4"):  {ip},
			entity.KeyTTY:                 {"4"},
		}
	}
	f := entity.NewFake("")
	f.Add(entity.Summary{Name: "web", State: entity.Running, Release: "Debian GNU/Linux 12 (bookworm)"},
		iface("lxcbr0", "eth0", "10.0.3.10/24"))
	f.Add(entity.Summary{Name: "db", State: entity.Stopped, Release: "Alpine Linux v3.20"},
		iface("lxcbr0", "eth0", "10.0.3.11/24"))
	f.Add(entity.Summary{Name: "cache", State: entity.Frozen, Release: "Ubuntu 24.04 LTS"},
		iface("br0", "eth0", ""))

	h := &entity.FakeHost{
		Interfaces: []string{"br0", "eth0", "lxcbr0"},
		Templates: []entity.Template{
			{Dist: "debian", Release: "bookworm", Arch: "amd64"},
			{Dist: "alpine", Release: "3.20", Arch: "amd64"},
		},
		Cores: runtime.NumCPU(),
	}
	return f, h
}
