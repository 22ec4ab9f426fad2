// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package lxc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/logging"
)

const DefaultPath = "/var/lib/lxc"

// Backend drives containers below Path with the lxc-* tools.
type Backend struct {
	Path   string
	Runner Runner
	Host   entity.Host
	// DefaultImage is used when a container is created from the Default
	// choice, as dist/release/arch.
	DefaultImage string

	mu      sync.Mutex
	configs map[string]*ConfigFile
}

var _ entity.Backend = (*Backend)(nil)

func New(path string, host entity.Host) *Backend {
	if path == "" {
		path = DefaultPath
	}
	return &Backend{
		Path:         path,
		Runner:       ExecRunner{},
		Host:         host,
		DefaultImage: "debian/bookworm/amd64",
		configs:      make(map[string]*ConfigFile),
	}
}

func (b *Backend) run(ctx context.Context, tool string, args ...string) ([]byte, error) {
	args = append([]string{"-P", b.Path}, args...)
	logging.Debugf("run %s %s", tool, strings.Join(args, " "))
	return b.Runner.Run(ctx, tool, args...)
}

// --- Enumeration ---

func (b *Backend) List(ctx context.Context) ([]entity.Summary, error) {
	out, err := b.run(ctx, "lxc-ls", "--fancy", "--fancy-format", "NAME,STATE")
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	summaries := parseList(out)
	for i := range summaries {
		if b.Host == nil {
			break
		}
		rel, err := b.Host.ReleaseInfo(filepath.Join(b.RootPath(summaries[i].Name), "etc", "os-release"))
		if err == nil {
			summaries[i].Release = rel
		}
	}
	return summaries, nil
}

// parseList reads lxc-ls --fancy output: a header line, then NAME STATE.
func parseList(out []byte) []entity.Summary {
	var list []entity.Summary
	sc := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if header {
			header = false
			if len(fields) > 0 && fields[0] == "NAME" {
				continue
			}
		}
		if len(fields) < 2 {
			continue
		}
		list = append(list, entity.Summary{Name: fields[0], State: entity.State(strings.ToUpper(fields[1]))})
	}
	return list
}

func (b *Backend) RootPath(name string) string {
	return filepath.Join(b.Path, name, "rootfs")
}

// --- Configuration ---

func (b *Backend) configPath(name string) string {
	return filepath.Join(b.Path, name, "config")
}

// config returns the cached config of name, reading it on first use.
func (b *Backend) config(name string) (*ConfigFile, error) {
	if c, ok := b.configs[name]; ok {
		return c, nil
	}
	f, err := os.Open(b.configPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", name, entity.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", b.configPath(name), err)
	}
	b.configs[name] = c
	return c, nil
}

func (b *Backend) GetConfig(ctx context.Context, name, key string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.config(name)
	if err != nil {
		return nil, err
	}
	if key == entity.KeyNetwork {
		return c.Networks(), nil
	}
	return c.Get(key), nil
}

func (b *Backend) SetConfig(ctx context.Context, name, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.config(name)
	if err != nil {
		return err
	}
	c.Set(key, value)
	return nil
}

func (b *Backend) ClearConfig(ctx context.Context, name, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.config(name)
	if err != nil {
		return err
	}
	c.Clear(key)
	return nil
}

// SaveConfig writes the edited config next to the old one and renames it
// into place.
func (b *Backend) SaveConfig(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.config(name)
	if err != nil {
		return err
	}
	path := b.configPath(name)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*")
	if err != nil {
		return fmt.Errorf("save config of %q: %w", name, err)
	}
	if _, err := c.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save config of %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o640); err != nil {
		logging.Warnf("chmod %s: %v", tmp.Name(), err)
	}
	return os.Rename(tmp.Name(), path)
}

func (b *Backend) forget(name string) {
	b.mu.Lock()
	delete(b.configs, name)
	b.mu.Unlock()
}

// --- Lifecycle ---

func (b *Backend) createArgs(name string, tmpl entity.Template) ([]string, error) {
	if tmpl.IsDefault() {
		parts := strings.Split(b.DefaultImage, "/")
		if len(parts) != 3 {
			return nil, fmt.Errorf("default image %q is not dist/release/arch", b.DefaultImage)
		}
		tmpl = entity.Template{Dist: parts[0], Release: parts[1], Arch: parts[2]}
	}
	return []string{"-n", name, "-t", "download", "--",
		"--dist", tmpl.Dist, "--release", tmpl.Release, "--arch", tmpl.Arch}, nil
}

func (b *Backend) Create(ctx context.Context, name string, tmpl entity.Template) error {
	args, err := b.createArgs(name, tmpl)
	if err != nil {
		return err
	}
	_, err = b.run(ctx, "lxc-create", args...)
	return err
}

// CreateCommand returns lxc-create for name ready to run on a terminal, so
// the download progress stays visible.
func (b *Backend) CreateCommand(name string, tmpl entity.Template) (*exec.Cmd, error) {
	args, err := b.createArgs(name, tmpl)
	if err != nil {
		return nil, err
	}
	return exec.Command("lxc-create", append([]string{"-P", b.Path}, args...)...), nil
}

func (b *Backend) simple(ctx context.Context, tool, name string, extra ...string) error {
	_, err := b.run(ctx, tool, append([]string{"-n", name}, extra...)...)
	return err
}

func (b *Backend) Start(ctx context.Context, name string) error {
	return b.simple(ctx, "lxc-start", name, "-d")
}

func (b *Backend) Stop(ctx context.Context, name string) error {
	return b.simple(ctx, "lxc-stop", name)
}

func (b *Backend) Freeze(ctx context.Context, name string) error {
	return b.simple(ctx, "lxc-freeze", name)
}

func (b *Backend) Unfreeze(ctx context.Context, name string) error {
	return b.simple(ctx, "lxc-unfreeze", name)
}

func (b *Backend) Destroy(ctx context.Context, name string) error {
	defer b.forget(name)
	return b.simple(ctx, "lxc-destroy", name)
}

func (b *Backend) Clone(ctx context.Context, name, newName string) error {
	return b.simple(ctx, "lxc-copy", name, "-N", newName)
}

func (b *Backend) Rename(ctx context.Context, name, newName string) error {
	defer b.forget(name)
	return b.simple(ctx, "lxc-copy", name, "-R", "-N", newName)
}

// WaitForState reports false when the state was not reached in time.
func (b *Backend) WaitForState(ctx context.Context, name string, state entity.State, timeout time.Duration) (bool, error) {
	secs := max(int(timeout.Round(time.Second)/time.Second), 1)
	err := b.simple(ctx, "lxc-wait", name, "-s", string(state), "-t", strconv.Itoa(secs))
	var ce *CommandError
	switch {
	case err == nil:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case errors.As(err, &ce) && ce.ExitCode > 0:
		return false, nil
	}
	return false, err
}

func (b *Backend) Attach(name string, args ...string) *exec.Cmd {
	argv := []string{"-P", b.Path, "-n", name}
	if len(args) > 0 {
		argv = append(append(argv, "--"), args...)
	}
	return exec.Command("lxc-attach", argv...)
}

// --- Snapshots ---

func (b *Backend) ListSnapshots(ctx context.Context, name string) ([]entity.Snapshot, error) {
	out, err := b.run(ctx, "lxc-snapshot", "-n", name, "-L")
	if err != nil {
		return nil, err
	}
	return parseSnapshots(out), nil
}

// parseSnapshots reads lines like "snap0 (/var/lib/lxc/web/snaps) 2026:01:02 03:04:05".
func parseSnapshots(out []byte) []entity.Snapshot {
	var snaps []entity.Snapshot
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] == "No" {
			continue
		}
		s := entity.Snapshot{Name: fields[0]}
		rest := fields[1:]
		if len(rest) > 0 && strings.HasPrefix(rest[0], "(") {
			rest = rest[1:]
		}
		s.Timestamp = strings.Join(rest, " ")
		snaps = append(snaps, s)
	}
	return snaps
}

func (b *Backend) TakeSnapshot(ctx context.Context, name string) error {
	return b.simple(ctx, "lxc-snapshot", name)
}

func (b *Backend) RestoreSnapshot(ctx context.Context, name, id string) error {
	defer b.forget(name)
	return b.simple(ctx, "lxc-snapshot", name, "-r", id)
}

func (b *Backend) DestroySnapshot(ctx context.Context, name, id string) error {
	return b.simple(ctx, "lxc-snapshot", name, "-d", id)
}
