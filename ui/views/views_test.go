// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/sizer"
	"github.com/toeirei/lxcui/ui/widget"
)

// fakeTerm replays keys on a plain Screen and fails with io.EOF once
// they run out.
type fakeTerm struct {
	*widget.Screen
	keys  []widget.Key
	execs []*exec.Cmd
	wakes atomic.Int32
}

func (f *fakeTerm) ReadKey(ctx context.Context) (widget.Key, error) {
	if err := ctx.Err(); err != nil {
		return widget.Key{}, err
	}
	if len(f.keys) == 0 {
		return widget.Key{}, io.EOF
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeTerm) Exec(cmd *exec.Cmd) error {
	f.execs = append(f.execs, cmd)
	return nil
}

func (f *fakeTerm) Wake() { f.wakes.Add(1) }

// text is the whole screen without styling.
func (f *fakeTerm) text() string {
	_, h := f.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = f.Line(y)
	}
	return strings.Join(lines, "\n")
}

func typed(s string) []widget.Key {
	keys := make([]widget.Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, widget.R(r))
	}
	return keys
}

func script(parts ...any) []widget.Key {
	var keys []widget.Key
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			keys = append(keys, typed(v)...)
		case rune:
			keys = append(keys, widget.R(v))
		case widget.KeyCode:
			keys = append(keys, widget.K(v))
		case widget.Key:
			keys = append(keys, v)
		}
	}
	return keys
}

const measured = 2048

func fixedSize(ctx context.Context, path string, progress sizer.Sink) (int64, error) {
	if progress != nil {
		progress(measured / 4)
	}
	return measured, nil
}

type harness struct {
	app     *App
	backend *entity.Fake
	term    *fakeTerm
	worker  *sizer.Worker
	copied  []string
}

func newHarness(t *testing.T, keys []widget.Key, seed ...entity.Summary) *harness {
	t.Helper()
	i18n.Init("en")
	backend := entity.NewFake(t.TempDir())
	for _, s := range seed {
		backend.Add(s, map[string][]string{
			entity.NetworkKey(0, "type"):  {"veth"},
			entity.NetworkKey(0, "link"):  {"lxcbr0"},
			entity.NetworkKey(0, "flags"): {"up"},
			entity.NetworkKey(0, "name"):  {"eth0"},
			entity.KeyTTY:                 {"4"},
		})
	}
	host := &entity.FakeHost{
		Interfaces: []string{"lxcbr0", "eth0"},
		Templates:  []entity.Template{{Dist: "debian", Release: "bookworm", Arch: "amd64"}},
		Cores:      4,
	}
	term := &fakeTerm{Screen: widget.NewScreen(100, 30), keys: keys}
	worker := sizer.New(fixedSize)
	t.Cleanup(func() { _ = worker.Close() })

	h := &harness{backend: backend, term: term, worker: worker}
	h.app = New(backend, host, term, worker)
	h.app.Copy = func(text string) error {
		h.copied = append(h.copied, text)
		return nil
	}
	return h
}

func (h *harness) run(t *testing.T) {
	t.Helper()
	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

// verbs drops the saves from the recorded backend calls.
func (h *harness) verbs() []string {
	return slices.DeleteFunc(h.backend.Calls(), func(c string) bool {
		return strings.HasPrefix(c, "save ")
	})
}

func (h *harness) config(t *testing.T, name, key string) string {
	t.Helper()
	v, err := h.backend.GetConfig(context.Background(), name, key)
	if err != nil {
		t.Fatalf("GetConfig(%s): %v", key, err)
	}
	return strings.Join(v, ",")
}

func (h *harness) names(t *testing.T) []string {
	t.Helper()
	list, err := h.backend.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	return names
}

var (
	web = entity.Summary{Name: "web", State: entity.Running, Release: "Debian 12"}
	db  = entity.Summary{Name: "db", State: entity.Stopped, Release: "Alpine 3.20"}
)

func TestList_EmptyShowsPlaceholder(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t)
	if !strings.Contains(h.term.text(), "no LXC") {
		t.Fatalf("placeholder missing:\n%s", h.term.text())
	}
}

func TestList_QuitKeys(t *testing.T) {
	for _, k := range []widget.Key{widget.R('q'), widget.K(widget.KeyCancel)} {
		h := newHarness(t, []widget.Key{k, widget.R('r')}, db)
		h.run(t)
		if len(h.verbs()) != 0 {
			t.Fatalf("%v: unexpected calls %v", k, h.verbs())
		}
		if len(h.term.keys) != 1 {
			t.Fatalf("%v: list kept reading keys", k)
		}
	}
}

func TestList_RowsAndMenuFollowCursor(t *testing.T) {
	h := newHarness(t, script(widget.KeyDown), db, web)
	h.run(t)

	_, height := h.term.Size()
	if bar := h.term.Line(height - 1); !strings.Contains(bar, "S:Stop") || strings.Contains(bar, "R:Run") {
		t.Fatalf("menu bar does not match running web: %q", bar)
	}
	if h.app.cursor != 1 {
		t.Fatalf("cursor = %d", h.app.cursor)
	}
	screen := h.term.text()
	for _, want := range []string{"[S] db", "[R] web", "Alpine 3.20"} {
		if !strings.Contains(screen, want) {
			t.Fatalf("%q missing:\n%s", want, screen)
		}
	}
}

func TestList_MenuForStopped(t *testing.T) {
	h := newHarness(t, nil, db)
	h.run(t)
	_, height := h.term.Size()
	if bar := h.term.Line(height - 1); !strings.Contains(bar, "R:Run L:Clone N:Rename") {
		t.Fatalf("menu bar = %q", bar)
	}
}

func TestStart_WaitsAndMeasures(t *testing.T) {
	h := newHarness(t, script('r'), db)
	h.run(t)

	if got := h.verbs(); !slices.Equal(got, []string{"start db"}) {
		t.Fatalf("calls = %v", got)
	}
	if got := h.app.sizes["db"]; got != sizer.Format(measured) {
		t.Fatalf("size = %q", got)
	}
	if err := h.worker.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if h.term.wakes.Load() == 0 {
		t.Fatalf("finished measurements never woke the terminal")
	}
}

func TestStateGuards(t *testing.T) {
	// f on the stopped db, r and u on the running web do nothing.
	h := newHarness(t, script('f', widget.KeyDown, 'r', 'u'), web, db)
	h.run(t)
	if got := h.verbs(); len(got) != 0 {
		t.Fatalf("calls = %v", got)
	}
}

func TestFreezeAndUnfreeze(t *testing.T) {
	h := newHarness(t, script('f', 'u', 's'), web)
	h.run(t)
	want := []string{"freeze web", "unfreeze web", "stop web"}
	if got := h.verbs(); !slices.Equal(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestDestroy_ConfirmStopsFirst(t *testing.T) {
	h := newHarness(t, script('d', widget.KeyEnter), web)
	h.run(t)
	if got := h.verbs(); !slices.Equal(got, []string{"stop web", "destroy web"}) {
		t.Fatalf("calls = %v", got)
	}
	if names := h.names(t); len(names) != 0 {
		t.Fatalf("still listed: %v", names)
	}
}

func TestDestroy_Declined(t *testing.T) {
	h := newHarness(t, script('d', widget.KeyTab, widget.KeyEnter), web)
	h.run(t)
	if got := h.verbs(); len(got) != 0 {
		t.Fatalf("calls = %v", got)
	}
}

func TestConsole_ExecsAttach(t *testing.T) {
	h := newHarness(t, script('t'), web)
	h.run(t)
	if len(h.term.execs) != 1 {
		t.Fatalf("execs = %d", len(h.term.execs))
	}
	if got := h.verbs(); !slices.Equal(got, []string{"attach web"}) {
		t.Fatalf("calls = %v", got)
	}
}

func TestClone_AsksAndMeasures(t *testing.T) {
	h := newHarness(t, script('l', "copy", widget.KeyEnter), db)
	h.run(t)
	if got := h.verbs(); !slices.Equal(got, []string{"clone db"}) {
		t.Fatalf("calls = %v", got)
	}
	if names := h.names(t); !slices.Equal(names, []string{"copy", "db"}) {
		t.Fatalf("names = %v", names)
	}
	if got := h.app.sizes["copy"]; got != sizer.Format(measured) {
		t.Fatalf("clone size = %q", got)
	}
}

func TestClone_EmptyNameDoesNothing(t *testing.T) {
	h := newHarness(t, script('l', "  ", widget.KeyEnter), db)
	h.run(t)
	if got := h.verbs(); len(got) != 0 {
		t.Fatalf("calls = %v", got)
	}
}

func TestRename(t *testing.T) {
	h := newHarness(t, script('n', "cache", widget.KeyEnter), db)
	h.run(t)
	if names := h.names(t); !slices.Equal(names, []string{"cache"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestRename_ErrorIsShown(t *testing.T) {
	other := entity.Summary{Name: "dns", State: entity.Stopped}
	h := newHarness(t, script('n', "dns", widget.KeyEnter), db, other)
	h.run(t)
	screen := h.term.text()
	if !strings.Contains(screen, "Error") || !strings.Contains(screen, "already exists") {
		t.Fatalf("error dialog missing:\n%s", screen)
	}
}

func TestYank_CopiesName(t *testing.T) {
	h := newHarness(t, script('y'), web)
	h.run(t)
	if !slices.Equal(h.copied, []string{"web"}) {
		t.Fatalf("copied = %v", h.copied)
	}
}

func TestYank_ErrorIsShown(t *testing.T) {
	h := newHarness(t, script('y'), web)
	h.app.Copy = func(string) error { return errors.New("no clipboard") }
	h.run(t)
	if !strings.Contains(h.term.text(), "no clipboard") {
		t.Fatalf("error missing:\n%s", h.term.text())
	}
}

func TestCreate_FromCachedTemplate(t *testing.T) {
	h := newHarness(t, script('c', "mail", widget.KeyTab, widget.KeyDown, ' ', widget.KeyEnter))
	h.run(t)

	list, err := h.backend.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "mail" || list[0].Release != "debian bookworm" {
		t.Fatalf("created %+v", list)
	}
	if got := h.app.sizes["mail"]; got != sizer.Format(measured) {
		t.Fatalf("size = %q", got)
	}
}

func TestCreate_Cancelled(t *testing.T) {
	h := newHarness(t, script('c', "mail", widget.KeyCancel))
	h.run(t)
	if got := h.verbs(); len(got) != 0 {
		t.Fatalf("calls = %v", got)
	}
}

func TestInterfaces_TypeChangeRewrites(t *testing.T) {
	// Tab to the type column, pick vlan, confirm from the list.
	h := newHarness(t, script('i', widget.KeyTab, widget.KeyTab, widget.KeyDown, ' ', widget.KeyEnter), db)
	h.run(t)

	checks := map[string]string{
		entity.NetworkKey(0, "type"):   "vlan",
		entity.NetworkKey(0, "link"):   "lxcbr0",
		entity.NetworkKey(0, "flags"):  "up",
		entity.NetworkKey(0, "name"):   "eth0",
		entity.NetworkKey(0, "hwaddr"): "",
	}
	for key, want := range checks {
		if got := h.config(t, "db", key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
	if h.backend.Saved("db") == 0 {
		t.Fatalf("config never saved")
	}
}

func TestInterfaces_ChangedPropertyOnly(t *testing.T) {
	// Tab to the IPv4 field.
	keys := script('i')
	for range 6 {
		keys = append(keys, widget.K(widget.KeyTab))
	}
	keys = append(keys, script("10.0.3.5", widget.KeyEnter)...)
	h := newHarness(t, keys, db)
	h.run(t)

	if got := h.config(t, "db", entity.NetworkKey(0, "ipv4")); got != "10.0.3.5" {
		t.Fatalf("ipv4 = %q", got)
	}
	if got := h.config(t, "db", entity.NetworkKey(0, "type")); got != "veth" {
		t.Fatalf("type = %q", got)
	}
	if got := h.backend.Saved("db"); got != 1 {
		t.Fatalf("saved %d times", got)
	}
}

func TestInterfaces_InsertAddsInterface(t *testing.T) {
	h := newHarness(t, script('i', widget.KeyInsertRow, widget.KeyCancel), db)
	h.run(t)
	if got := h.config(t, "db", entity.KeyNetwork); got != "veth,veth" {
		t.Fatalf("interfaces = %q", got)
	}
}

func TestInterfaces_DeleteRemovesInterface(t *testing.T) {
	h := newHarness(t, script('i', widget.KeyDeleteRow, widget.KeyCancel), db)
	h.run(t)
	if got := h.config(t, "db", entity.KeyNetwork); got != "" {
		t.Fatalf("interfaces = %q", got)
	}
}

func TestInterfaces_DeleteThenConfirmKeepsSurvivor(t *testing.T) {
	h := newHarness(t, script('i', widget.KeyDeleteRow, widget.KeyEnter), db)
	ctx := context.Background()
	set := func(index int, prop, value string) {
		key := entity.NetworkKey(index, prop)
		if err := h.backend.ClearConfig(ctx, "db", key); err != nil {
			t.Fatalf("ClearConfig: %v", err)
		}
		if err := h.backend.SetConfig(ctx, "db", key, value); err != nil {
			t.Fatalf("SetConfig: %v", err)
		}
	}
	set(0, "name", "deleted0")
	set(0, "ipv4", "10.0.0.1")
	for prop, value := range map[string]string{
		"type": "veth", "link": "lxcbr0", "flags": "up", "name": "survivor1", "ipv4": "10.0.0.2",
	} {
		set(1, prop, value)
	}
	h.run(t)

	checks := map[string]string{
		entity.KeyNetwork:            "veth",
		entity.NetworkKey(0, "name"): "survivor1",
		entity.NetworkKey(0, "ipv4"): "10.0.0.2",
		entity.NetworkKey(0, "link"): "lxcbr0",
	}
	for key, want := range checks {
		if got := h.config(t, "db", key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestInterfaces_DeleteLastThenConfirmWritesNothing(t *testing.T) {
	h := newHarness(t, script('i', widget.KeyDeleteRow, widget.KeyEnter), db)
	h.run(t)
	if got := h.config(t, "db", entity.KeyNetwork); got != "" {
		t.Fatalf("interfaces = %q", got)
	}
	if got := h.config(t, "db", entity.NetworkKey(0, "name")); got != "" {
		t.Fatalf("name0 = %q", got)
	}
}

func TestInterfaces_InsertThenConfirmEditsNewInterface(t *testing.T) {
	h := newHarness(t, script('i', widget.KeyInsertRow, widget.KeyEnter), db)
	h.run(t)
	if got := h.config(t, "db", entity.KeyNetwork); got != "veth,veth" {
		t.Fatalf("interfaces = %q", got)
	}
	if got := h.config(t, "db", entity.NetworkKey(0, "name")); got != "eth0" {
		t.Fatalf("name0 = %q", got)
	}
	if got := h.config(t, "db", entity.NetworkKey(1, "name")); got != "" {
		t.Fatalf("name1 = %q", got)
	}
}

func TestInterfaces_FailedInsertIsShown(t *testing.T) {
	h := newHarness(t, script('i', widget.KeyInsertRow, widget.KeyDeleteRow, widget.KeyCancel), db)
	h.app.Backend = entity.NewMockBackend(h.backend, entity.MockBackendOverwrites{
		SetConfig: func(ctx context.Context, name, key, value string) error {
			return errors.New("config locked")
		},
	})
	h.run(t)
	if !strings.Contains(h.term.text(), "config locked") {
		t.Fatalf("error missing:\n%s", h.term.text())
	}
}

func TestLimits_WritesFilledFields(t *testing.T) {
	h := newHarness(t, script('e', "512M", widget.KeyEnter), db)
	h.run(t)
	if got := h.config(t, "db", entity.KeyMemoryLimit); got != "512M" {
		t.Fatalf("memory = %q", got)
	}
	if got := h.config(t, "db", entity.KeyTTY); got != "4" {
		t.Fatalf("tty = %q", got)
	}
	if got := h.config(t, "db", entity.KeyCPUShares); got != "" {
		t.Fatalf("empty field written: %q", got)
	}
}

func TestLimits_DigitsOnly(t *testing.T) {
	// Second field is the CPU set, which takes digits only.
	h := newHarness(t, script('e', widget.KeyTab, "0x1", widget.KeyEnter), db)
	h.run(t)
	if got := h.config(t, "db", entity.KeyCPUSet); got != "01" {
		t.Fatalf("cpuset = %q", got)
	}
}

func TestSnapshots_TakeAndRestore(t *testing.T) {
	h := newHarness(t, script('p', widget.KeyInsertRow, widget.KeyEnter), db)
	h.run(t)
	want := []string{"snapshot db", "restore db"}
	if got := h.verbs(); !slices.Equal(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestSnapshots_Delete(t *testing.T) {
	h := newHarness(t, script('p', widget.KeyInsertRow, widget.KeyInsertRow, widget.KeyDeleteRow, widget.KeyCancel), db)
	h.run(t)
	snaps, err := h.backend.ListSnapshots(context.Background(), "db")
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Name != "snap1" {
		t.Fatalf("snapshots = %+v", snaps)
	}
}

func TestDestroyHelper_StoppedSkipsStop(t *testing.T) {
	backend := entity.NewFake("")
	backend.Add(db, nil)
	if err := Destroy(context.Background(), backend, db, 0); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if got := backend.Calls(); !slices.Equal(got, []string{"destroy db"}) {
		t.Fatalf("calls = %v", got)
	}
}

func TestStart_FailureIsShownAndNotAwaited(t *testing.T) {
	h := newHarness(t, script('r'), db)
	waited := false
	h.app.Backend = entity.NewMockBackend(h.backend, entity.MockBackendOverwrites{
		Start: func(ctx context.Context, name string) error {
			return errors.New("cgroup setup failed")
		},
		WaitForState: func(ctx context.Context, name string, state entity.State, timeout time.Duration) (bool, error) {
			waited = true
			return true, nil
		},
	})
	h.run(t)
	if waited {
		t.Fatalf("waited for a container that never started")
	}
	if !strings.Contains(h.term.text(), "cgroup setup failed") {
		t.Fatalf("error missing:\n%s", h.term.text())
	}
}

func TestStop_TimeoutKeepsGoing(t *testing.T) {
	h := newHarness(t, script('s'), web)
	h.app.Backend = entity.NewMockBackend(h.backend, entity.MockBackendOverwrites{
		WaitForState: func(ctx context.Context, name string, state entity.State, timeout time.Duration) (bool, error) {
			return false, nil
		},
	})
	h.run(t)
	if got := h.verbs(); !slices.Equal(got, []string{"stop web"}) {
		t.Fatalf("calls = %v", got)
	}
	if strings.Contains(h.term.text(), "Error") {
		t.Fatalf("timeout should not raise an error:\n%s", h.term.text())
	}
}

func TestSnapshots_EarlierFailureSurvivesLaterSuccess(t *testing.T) {
	h := newHarness(t, script('p', widget.KeyInsertRow, widget.KeyDeleteRow, widget.KeyCancel), db)
	if err := h.backend.TakeSnapshot(context.Background(), "db"); err != nil {
		t.Fatalf("TakeSnapshot: %v", err)
	}
	h.app.Backend = entity.NewMockBackend(h.backend, entity.MockBackendOverwrites{
		TakeSnapshot: func(ctx context.Context, name string) error {
			return errors.New("disk full")
		},
	})
	h.run(t)

	snaps, err := h.backend.ListSnapshots(context.Background(), "db")
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("snapshot not destroyed: %+v", snaps)
	}
	if !strings.Contains(h.term.text(), "disk full") {
		t.Fatalf("error missing:\n%s", h.term.text())
	}
}
