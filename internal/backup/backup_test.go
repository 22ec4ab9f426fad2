// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/toeirei/lxcui/internal/entity"
)

func seeded() *entity.Fake {
	f := entity.NewFake("")
	f.Add(entity.Summary{Name: "web", State: entity.Running}, map[string][]string{
		"lxc.network.0.type":  {"veth"},
		"lxc.network.0.link":  {"lxcbr0"},
		"lxc.network.0.flags": {"up"},
		"lxc.network.1.type":  {"phys"},
		"lxc.network.1.link":  {"eth1"},
		entity.KeyTTY:         {"4"},
		entity.KeyCPUSet:      {"0-1"},
	})
	f.Add(entity.Summary{Name: "db"}, nil)
	return f
}

func TestCollect(t *testing.T) {
	f := seeded()
	if err := f.TakeSnapshot(context.Background(), "web"); err != nil {
		t.Fatalf("TakeSnapshot: %v", err)
	}
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	data, err := Collect(context.Background(), f, now)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if data.Version != FormatVersion || !data.Created.Equal(now) {
		t.Fatalf("header %+v", data)
	}
	if len(data.Entities) != 2 || data.Entities[0].Summary.Name != "db" {
		t.Fatalf("entities %+v", data.Entities)
	}
	web := data.Entities[1]
	if got := web.Config["lxc.network.1.link"]; !slices.Equal(got, []string{"eth1"}) {
		t.Fatalf("interface 1 link %v", got)
	}
	if _, ok := web.Config["lxc.network.1.flags"]; ok {
		t.Fatalf("empty keys must be left out: %v", web.Config)
	}
	if got := web.Config[entity.KeyCPUSet]; !slices.Equal(got, []string{"0-1"}) {
		t.Fatalf("cpuset %v", got)
	}
	if len(web.Snapshots) != 1 {
		t.Fatalf("snapshots %+v", web.Snapshots)
	}
}

func TestWriteRead(t *testing.T) {
	data, err := Collect(context.Background(), seeded(), time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if bytes.HasPrefix(buf.Bytes(), []byte("{")) {
		t.Fatalf("output is not compressed")
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Entities) != 2 || got.Entities[1].Config[entity.KeyTTY][0] != "4" {
		t.Fatalf("decoded %+v", got)
	}
}

func TestReadRejectsOtherVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &Data{Version: 99}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Read(&buf); !errors.Is(err, entity.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestFiles(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	if got := FileName("", now); got != "lxcui-export-2026-10-18.json.zst" {
		t.Fatalf("default name %q", got)
	}
	if got := FileName("dump.json", now); got != "dump.json.zst" {
		t.Fatalf("suffix %q", got)
	}

	path := filepath.Join(t.TempDir(), FileName("dump", now))
	if err := WriteFile(path, &Data{Version: FormatVersion, Created: now}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !got.Created.Equal(now) {
		t.Fatalf("created %v", got.Created)
	}
}
