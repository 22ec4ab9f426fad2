// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/toeirei/lxcui/internal/entity"
)

const netDev = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:  123456     100    0    0    0     0          0         0   123456     100    0    0    0     0       0          0
  eth0: 9876543   12345    0    0    0     0          0         0  1234567    2345    0    0    0     0       0          0
lxcbr0:   34567     321    0    0    0     0          0         0    45678     432    0    0    0     0       0          0
vethA1B2C3:  100      1    0    0    0     0          0         0      200       2    0    0    0     0       0          0
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNetworkInterfaces(t *testing.T) {
	proc := t.TempDir()
	writeFile(t, filepath.Join(proc, "net", "dev"), netDev)

	s := New(proc, "")
	got, err := s.NetworkInterfaces()
	if err != nil {
		t.Fatalf("NetworkInterfaces: %v", err)
	}
	if !slices.Equal(got, []string{"eth0", "lxcbr0"}) {
		t.Fatalf("got %v", got)
	}

	s.KeepVeth = true
	got, _ = s.NetworkInterfaces()
	if !slices.Contains(got, "vethA1B2C3") || slices.Contains(got, "lo") {
		t.Fatalf("with veth: %v", got)
	}
}

func TestCachedTemplates(t *testing.T) {
	cache := t.TempDir()
	for _, p := range []string{
		"debian/bookworm/amd64/default/rootfs.tar.xz",
		"alpine/3.20/arm64/default/meta.tar.xz",
		"ubuntu/noble/amd64/partial/x",
	} {
		writeFile(t, filepath.Join(cache, p), "")
	}
	got, err := New("", cache).CachedTemplates()
	if err != nil {
		t.Fatalf("CachedTemplates: %v", err)
	}
	want := []entity.Template{
		{Dist: "alpine", Release: "3.20", Arch: "arm64"},
		{Dist: "debian", Release: "bookworm", Arch: "amd64"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCachedTemplates_MissingDir(t *testing.T) {
	got, err := New("", filepath.Join(t.TempDir(), "absent")).CachedTemplates()
	if err != nil || len(got) != 0 {
		t.Fatalf("missing cache: %v %v", got, err)
	}
}

func TestReleaseInfo(t *testing.T) {
	dir := t.TempDir()
	pretty := filepath.Join(dir, "pretty")
	writeFile(t, pretty, "NAME=\"Debian GNU/Linux\"\nPRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\nID=debian\n")
	plain := filepath.Join(dir, "plain")
	writeFile(t, plain, "# comment\nNAME='Alpine Linux'\nVERSION_ID=3.20.1\n")

	s := New("", "")
	if got, err := s.ReleaseInfo(pretty); err != nil || got != "Debian GNU/Linux 12 (bookworm)" {
		t.Fatalf("pretty: %q %v", got, err)
	}
	if got, err := s.ReleaseInfo(plain); err != nil || got != "Alpine Linux 3.20.1" {
		t.Fatalf("plain: %q %v", got, err)
	}
	if _, err := s.ReleaseInfo(filepath.Join(dir, "none")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
