// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package entity

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func seeded() *Fake {
	return NewFake("").
		Add(Summary{Name: "web", State: Running, Release: "Debian 12"}, map[string][]string{
			NetworkKey(0, "type"):   {"veth"},
			NetworkKey(0, "link"):   {"lxcbr0"},
			NetworkKey(1, "type"):   {"macvlan"},
			NetworkKey(1, "link"):   {"eth0"},
			NetworkKey(2, "type"):   {"phys"},
			NetworkKey(2, "hwaddr"): {"00:16:3e:aa:bb:cc"},
		}).
		Add(Summary{Name: "db"}, nil)
}

func TestFake_ListSorted(t *testing.T) {
	got, err := seeded().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Name != "db" || got[1].Name != "web" {
		t.Fatalf("unexpected list %+v", got)
	}
	if got[0].State != Stopped {
		t.Fatalf("default state = %s", got[0].State)
	}
}

func TestFake_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	if err := f.Start(ctx, "web"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("start of a running entity: %v", err)
	}
	steps := []struct {
		verb func(context.Context, string) error
		want State
	}{
		{f.Freeze, Frozen},
		{f.Unfreeze, Running},
		{f.Stop, Stopped},
		{f.Start, Running},
	}
	for _, s := range steps {
		if err := s.verb(ctx, "web"); err != nil {
			t.Fatalf("verb: %v", err)
		}
		ok, err := f.WaitForState(ctx, "web", s.want, time.Second)
		if err != nil || !ok {
			t.Fatalf("want state %s: ok=%v err=%v", s.want, ok, err)
		}
	}
	if err := f.Destroy(ctx, "web"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("destroy of a running entity: %v", err)
	}
	if err := f.Destroy(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("destroy of a missing entity: %v", err)
	}
}

func TestFake_CloneRename(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	if err := f.Clone(ctx, "db", "db2"); err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if err := f.Clone(ctx, "db", "web"); !errors.Is(err, ErrExists) {
		t.Fatalf("clone onto existing name: %v", err)
	}
	if err := f.Rename(ctx, "db2", "db3"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	list, _ := f.List(ctx)
	names := []string{}
	for _, s := range list {
		names = append(names, s.Name)
	}
	if !slices.Equal(names, []string{"db", "db3", "web"}) {
		t.Fatalf("names after clone and rename: %v", names)
	}
}

func TestFake_NetworkSections(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	types, err := f.GetConfig(ctx, "web", KeyNetwork)
	if err != nil || !slices.Equal(types, []string{"veth", "macvlan", "phys"}) {
		t.Fatalf("network types %v err %v", types, err)
	}
	if err := f.ClearConfig(ctx, "web", NetworkKey(1, "")); err != nil {
		t.Fatalf("ClearConfig: %v", err)
	}
	types, _ = f.GetConfig(ctx, "web", KeyNetwork)
	if !slices.Equal(types, []string{"veth", "phys"}) {
		t.Fatalf("after clearing interface 1: %v", types)
	}
	mac, _ := f.GetConfig(ctx, "web", NetworkKey(1, "hwaddr"))
	if First(mac) != "00:16:3e:aa:bb:cc" {
		t.Fatalf("interface 2 was not renumbered: %v", mac)
	}
}

func TestFake_Snapshots(t *testing.T) {
	ctx := context.Background()
	f := seeded()
	f.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	for i := 0; i < 2; i++ {
		if err := f.TakeSnapshot(ctx, "db"); err != nil {
			t.Fatalf("TakeSnapshot: %v", err)
		}
	}
	snaps, _ := f.ListSnapshots(ctx, "db")
	if len(snaps) != 2 || snaps[1].Name != "snap1" || snaps[0].Timestamp != "2026:01:02 03:04:05" {
		t.Fatalf("snapshots %+v", snaps)
	}
	if err := f.DestroySnapshot(ctx, "db", "snap0"); err != nil {
		t.Fatalf("DestroySnapshot: %v", err)
	}
	if err := f.RestoreSnapshot(ctx, "db", "snap0"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("restore of a destroyed snapshot: %v", err)
	}
	if err := f.RestoreSnapshot(ctx, "db", "snap1"); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
}

func TestMockBackend_Overwrite(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockBackend(seeded(), MockBackendOverwrites{
		Start: func(ctx context.Context, name string) error { return boom },
	})
	if err := m.Start(context.Background(), "db"); !errors.Is(err, boom) {
		t.Fatalf("overwrite not used: %v", err)
	}
	if err := m.Stop(context.Background(), "web"); err != nil {
		t.Fatalf("base not used: %v", err)
	}
}

func TestTemplateString(t *testing.T) {
	if (Template{}).String() != "Default" {
		t.Fatalf("zero template should read Default")
	}
	if s := (Template{Dist: "debian", Release: "bookworm", Arch: "amd64"}).String(); s != "debian/bookworm/amd64" {
		t.Fatalf("got %q", s)
	}
}
