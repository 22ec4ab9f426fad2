// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package entity

import (
	"context"
	"fmt"
	"maps"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

type fakeEntity struct {
	summary   Summary
	config    map[string][]string
	saved     int
	snapshots []Snapshot
	snapSeq   int
}

// Fake is an in-memory Backend. State changes take effect immediately, so
// WaitForState only compares.
type Fake struct {
	mu       sync.Mutex
	entities map[string]*fakeEntity
	// Root is joined with the entity name for RootPath.
	Root string
	// Now stamps snapshots.
	Now func() time.Time
	// calls records every mutating verb as "verb name".
	calls []string
}

var _ Backend = (*Fake)(nil)

func NewFake(root string) *Fake {
	return &Fake{
		entities: make(map[string]*fakeEntity),
		Root:     root,
		Now:      time.Now,
	}
}

// Add seeds an entity. config may be nil.
func (f *Fake) Add(s Summary, config map[string][]string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.State == "" {
		s.State = Stopped
	}
	cfg := make(map[string][]string, len(config))
	for k, v := range config {
		cfg[k] = slices.Clone(v)
	}
	f.entities[s.Name] = &fakeEntity{summary: s, config: cfg}
	return f
}

// Calls returns the verbs issued so far.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Saved reports how often SaveConfig ran for name.
func (f *Fake) Saved(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.entities[name]; ok {
		return e.saved
	}
	return 0
}

func (f *Fake) record(verb, name string) {
	f.calls = append(f.calls, verb+" "+name)
}

func (f *Fake) get(name string) (*fakeEntity, error) {
	e, ok := f.entities[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return e, nil
}

// --- Enumeration ---

func (f *Fake) List(ctx context.Context) ([]Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := slices.Sorted(maps.Keys(f.entities))
	out := make([]Summary, 0, len(names))
	for _, n := range names {
		out = append(out, f.entities[n].summary)
	}
	return out, nil
}

func (f *Fake) RootPath(name string) string {
	if f.Root == "" {
		return ""
	}
	return filepath.Join(f.Root, name)
}

// --- Configuration ---

func (f *Fake) GetConfig(ctx context.Context, name, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return nil, err
	}
	if key == KeyNetwork {
		var types []string
		for i := 0; ; i++ {
			t, ok := e.config[NetworkKey(i, "type")]
			if !ok {
				return types, nil
			}
			types = append(types, First(t))
		}
	}
	return slices.Clone(e.config[key]), nil
}

func (f *Fake) SetConfig(ctx context.Context, name, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	e.config[key] = append(e.config[key], value)
	return nil
}

func (f *Fake) ClearConfig(ctx context.Context, name, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	if index, ok := networkSection(key); ok {
		e.config = dropNetwork(e.config, index)
		return nil
	}
	// interface properties match exactly, other keys take their subkeys
	prefix := key + "."
	exact := strings.HasPrefix(key, KeyNetwork+".")
	for k := range e.config {
		if k == key || (!exact && strings.HasPrefix(k, prefix)) {
			delete(e.config, k)
		}
	}
	return nil
}

func (f *Fake) SaveConfig(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	e.saved++
	f.record("save", name)
	return nil
}

// networkSection reports whether key names a whole interface such as
// lxc.network.2.
func networkSection(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, KeyNetwork+".")
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	return i, err == nil
}

// dropNetwork removes interface index and renumbers the ones after it.
func dropNetwork(config map[string][]string, index int) map[string][]string {
	out := make(map[string][]string, len(config))
	for k, v := range config {
		rest, ok := strings.CutPrefix(k, KeyNetwork+".")
		if !ok {
			out[k] = v
			continue
		}
		num, prop, _ := strings.Cut(rest, ".")
		i, err := strconv.Atoi(num)
		switch {
		case err != nil || i < index:
			out[k] = v
		case i > index:
			out[NetworkKey(i-1, prop)] = v
		}
	}
	return out
}

// --- Lifecycle ---

func (f *Fake) Create(ctx context.Context, name string, tmpl Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entities[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrExists)
	}
	release := "Default"
	if !tmpl.IsDefault() {
		release = tmpl.Dist + " " + tmpl.Release
	}
	f.entities[name] = &fakeEntity{
		summary: Summary{Name: name, State: Stopped, Release: release},
		config: map[string][]string{
			NetworkKey(0, "type"):  {"veth"},
			NetworkKey(0, "link"):  {"lxcbr0"},
			NetworkKey(0, "flags"): {"up"},
			KeyTTY:                 {"4"},
		},
	}
	f.record("create", name)
	return nil
}

func (f *Fake) transition(verb, name string, from []State, to State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	if !slices.Contains(from, e.summary.State) {
		return fmt.Errorf("%s %q while %s: %w", verb, name, e.summary.State, ErrInvalidState)
	}
	e.summary.State = to
	f.record(verb, name)
	return nil
}

func (f *Fake) Start(ctx context.Context, name string) error {
	return f.transition("start", name, []State{Stopped}, Running)
}

func (f *Fake) Stop(ctx context.Context, name string) error {
	return f.transition("stop", name, []State{Running, Frozen}, Stopped)
}

func (f *Fake) Freeze(ctx context.Context, name string) error {
	return f.transition("freeze", name, []State{Running}, Frozen)
}

func (f *Fake) Unfreeze(ctx context.Context, name string) error {
	return f.transition("unfreeze", name, []State{Frozen}, Running)
}

func (f *Fake) Destroy(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	if e.summary.State != Stopped {
		return fmt.Errorf("destroy %q while %s: %w", name, e.summary.State, ErrInvalidState)
	}
	delete(f.entities, name)
	f.record("destroy", name)
	return nil
}

func (f *Fake) Clone(ctx context.Context, name, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	if _, ok := f.entities[newName]; ok {
		return fmt.Errorf("%q: %w", newName, ErrExists)
	}
	if e.summary.State != Stopped {
		return fmt.Errorf("clone %q while %s: %w", name, e.summary.State, ErrInvalidState)
	}
	c := &fakeEntity{summary: e.summary, config: make(map[string][]string, len(e.config))}
	c.summary.Name = newName
	for k, v := range e.config {
		c.config[k] = slices.Clone(v)
	}
	f.entities[newName] = c
	f.record("clone", name)
	return nil
}

func (f *Fake) Rename(ctx context.Context, name, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	if _, ok := f.entities[newName]; ok {
		return fmt.Errorf("%q: %w", newName, ErrExists)
	}
	if e.summary.State != Stopped {
		return fmt.Errorf("rename %q while %s: %w", name, e.summary.State, ErrInvalidState)
	}
	delete(f.entities, name)
	e.summary.Name = newName
	f.entities[newName] = e
	f.record("rename", name)
	return nil
}

func (f *Fake) WaitForState(ctx context.Context, name string, state State, timeout time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return false, err
	}
	return e.summary.State == state, nil
}

func (f *Fake) Attach(name string, args ...string) *exec.Cmd {
	f.mu.Lock()
	f.record("attach", name)
	f.mu.Unlock()
	return exec.Command("sh", "-c", `printf 'no console for %s in demo mode\n' "$1"; sleep 1`, "sh", name)
}

// --- Snapshots ---

func (f *Fake) ListSnapshots(ctx context.Context, name string) ([]Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return nil, err
	}
	return slices.Clone(e.snapshots), nil
}

func (f *Fake) TakeSnapshot(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	e.snapshots = append(e.snapshots, Snapshot{
		Name:      "snap" + strconv.Itoa(e.snapSeq),
		Timestamp: f.Now().Format("2006:01:02 15:04:05"),
	})
	e.snapSeq++
	f.record("snapshot", name)
	return nil
}

func (f *Fake) snapshotIndex(e *fakeEntity, id string) (int, error) {
	i := slices.IndexFunc(e.snapshots, func(s Snapshot) bool { return s.Name == id })
	if i < 0 {
		return -1, fmt.Errorf("snapshot %q: %w", id, ErrNotFound)
	}
	return i, nil
}

func (f *Fake) RestoreSnapshot(ctx context.Context, name, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	if _, err := f.snapshotIndex(e, id); err != nil {
		return err
	}
	f.record("restore", name)
	return nil
}

func (f *Fake) DestroySnapshot(ctx context.Context, name, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, err := f.get(name)
	if err != nil {
		return err
	}
	i, err := f.snapshotIndex(e, id)
	if err != nil {
		return err
	}
	e.snapshots = slices.Delete(e.snapshots, i, i+1)
	f.record("snapdestroy", name)
	return nil
}

// FakeHost is a Host with fixed answers.
type FakeHost struct {
	Interfaces []string
	Templates  []Template
	Cores      int
	Releases   map[string]string
}

var _ Host = (*FakeHost)(nil)

func (h *FakeHost) NetworkInterfaces() ([]string, error) { return slices.Clone(h.Interfaces), nil }
func (h *FakeHost) CachedTemplates() ([]Template, error) { return slices.Clone(h.Templates), nil }
func (h *FakeHost) CPUCores() int                        { return h.Cores }

func (h *FakeHost) ReleaseInfo(path string) (string, error) {
	if r, ok := h.Releases[path]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrNotFound)
}
