// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package lxc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/lxcui/internal/entity"
)

type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return []byte(r.outputs[name]), r.errs[name]
}

func (r *fakeRunner) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return strings.Join(r.calls[len(r.calls)-1], " ")
}

func newBackend(t *testing.T) (*Backend, *fakeRunner) {
	t.Helper()
	r := &fakeRunner{outputs: map[string]string{}, errs: map[string]error{}}
	b := New(t.TempDir(), &entity.FakeHost{Releases: map[string]string{}})
	b.Runner = r
	return b, r
}

func TestList(t *testing.T) {
	b, r := newBackend(t)
	r.outputs["lxc-ls"] = "NAME    STATE\nweb     RUNNING\ndb      STOPPED\n"
	b.Host.(*entity.FakeHost).Releases[filepath.Join(b.Path, "web", "rootfs", "etc", "os-release")] = "Debian 12"

	got, err := b.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []entity.Summary{
		{Name: "web", State: entity.Running, Release: "Debian 12"},
		{Name: "db", State: entity.Stopped},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !strings.HasPrefix(r.last(), "lxc-ls -P "+b.Path) {
		t.Fatalf("unexpected command %q", r.last())
	}
}

func TestLifecycleCommands(t *testing.T) {
	b, r := newBackend(t)
	ctx := context.Background()
	cases := []struct {
		call func() error
		want string
	}{
		{func() error { return b.Start(ctx, "web") }, "lxc-start -P " + b.Path + " -n web -d"},
		{func() error { return b.Stop(ctx, "web") }, "lxc-stop -P " + b.Path + " -n web"},
		{func() error { return b.Freeze(ctx, "web") }, "lxc-freeze -P " + b.Path + " -n web"},
		{func() error { return b.Clone(ctx, "web", "web2") }, "lxc-copy -P " + b.Path + " -n web -N web2"},
		{func() error { return b.Rename(ctx, "web", "www") }, "lxc-copy -P " + b.Path + " -n web -R -N www"},
		{func() error { return b.TakeSnapshot(ctx, "web") }, "lxc-snapshot -P " + b.Path + " -n web"},
		{func() error { return b.RestoreSnapshot(ctx, "web", "snap0") }, "lxc-snapshot -P " + b.Path + " -n web -r snap0"},
		{func() error {
			return b.Create(ctx, "new", entity.Template{Dist: "alpine", Release: "3.20", Arch: "amd64"})
		}, "lxc-create -P " + b.Path + " -n new -t download -- --dist alpine --release 3.20 --arch amd64"},
		{func() error { return b.Create(ctx, "new", entity.Template{}) },
			"lxc-create -P " + b.Path + " -n new -t download -- --dist debian --release bookworm --arch amd64"},
	}
	for _, c := range cases {
		if err := c.call(); err != nil {
			t.Fatalf("%s: %v", c.want, err)
		}
		if r.last() != c.want {
			t.Fatalf("got %q, want %q", r.last(), c.want)
		}
	}
}

func TestWaitForState(t *testing.T) {
	b, r := newBackend(t)
	ok, err := b.WaitForState(context.Background(), "web", entity.Stopped, 3*time.Second)
	if err != nil || !ok {
		t.Fatalf("wait: %v %v", ok, err)
	}
	if r.last() != "lxc-wait -P "+b.Path+" -n web -s STOPPED -t 3" {
		t.Fatalf("command %q", r.last())
	}

	r.errs["lxc-wait"] = &CommandError{Args: []string{"lxc-wait"}, ExitCode: 1, Err: errors.New("exit status 1")}
	ok, err = b.WaitForState(context.Background(), "web", entity.Stopped, 3*time.Second)
	if err != nil || ok {
		t.Fatalf("timeout should be (false, nil), got (%v, %v)", ok, err)
	}

	r.errs["lxc-wait"] = &CommandError{Args: []string{"lxc-wait"}, ExitCode: -1, Err: errors.New("not found")}
	if _, err := b.WaitForState(context.Background(), "web", entity.Stopped, time.Second); err == nil {
		t.Fatalf("missing tool should be an error")
	}
}

func TestAttachCommand(t *testing.T) {
	b, _ := newBackend(t)
	cmd := b.Attach("web")
	if got := strings.Join(cmd.Args, " "); got != "lxc-attach -P "+b.Path+" -n web" {
		t.Fatalf("args %q", got)
	}
	cmd = b.Attach("web", "ls", "/")
	if got := strings.Join(cmd.Args[len(cmd.Args)-3:], " "); got != "-- ls /" {
		t.Fatalf("args %q", got)
	}
}

func TestSnapshotsParse(t *testing.T) {
	b, r := newBackend(t)
	r.outputs["lxc-snapshot"] = "snap0 (/var/lib/lxc/web/snaps) 2026:01:02 03:04:05\nsnap1 (/var/lib/lxc/web/snaps) 2026:02:03 04:05:06\n"
	got, err := b.ListSnapshots(context.Background(), "web")
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(got) != 2 || got[1].Name != "snap1" || got[0].Timestamp != "2026:01:02 03:04:05" {
		t.Fatalf("got %+v", got)
	}
	r.outputs["lxc-snapshot"] = "No snapshots\n"
	if got, _ := b.ListSnapshots(context.Background(), "web"); len(got) != 0 {
		t.Fatalf("expected no snapshots, got %+v", got)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	b, _ := newBackend(t)
	ctx := context.Background()
	dir := filepath.Join(b.Path, "web")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	config := "# Distribution configuration\nlxc.net.0.type = veth\nlxc.net.0.link = lxcbr0\nlxc.tty.max = 4\n"
	if err := os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}

	tty, err := b.GetConfig(ctx, "web", entity.KeyTTY)
	if err != nil || entity.First(tty) != "4" {
		t.Fatalf("tty %v %v", tty, err)
	}
	if err := b.ClearConfig(ctx, "web", entity.KeyTTY); err != nil {
		t.Fatalf("ClearConfig: %v", err)
	}
	if err := b.SetConfig(ctx, "web", entity.KeyTTY, "2"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if err := b.SetConfig(ctx, "web", entity.NetworkKey(0, "flags"), "up"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if err := b.SaveConfig(ctx, "web"); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "# Distribution configuration\nlxc.net.0.type = veth\nlxc.net.0.link = lxcbr0\nlxc.net.0.flags = up\nlxc.tty.max = 2\n"
	if string(data) != want {
		t.Fatalf("saved config:\n%s\nwant:\n%s", data, want)
	}

	if _, err := b.GetConfig(ctx, "missing", entity.KeyTTY); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("missing container: %v", err)
	}
}

func TestCreateCommand(t *testing.T) {
	b, _ := newBackend(t)
	cmd, err := b.CreateCommand("new", entity.Template{Dist: "alpine", Release: "3.20", Arch: "arm64"})
	if err != nil {
		t.Fatalf("CreateCommand: %v", err)
	}
	want := "lxc-create -P " + b.Path + " -n new -t download -- --dist alpine --release 3.20 --arch arm64"
	if got := strings.Join(cmd.Args, " "); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	b.DefaultImage = "debian"
	if _, err := b.CreateCommand("new", entity.Template{}); err == nil {
		t.Fatalf("malformed default image should fail")
	}
}
