// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup dumps the state the editors work on into a zstd compressed
// JSON document.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/lxcui/internal/entity"
)

// FormatVersion is stored in every dump.
const FormatVersion = 1

// Entity is one container in a dump. Config holds the keys the editors use
// and only those with values.
type Entity struct {
	Summary   entity.Summary      `json:"summary"`
	Config    map[string][]string `json:"config,omitempty"`
	Snapshots []entity.Snapshot   `json:"snapshots,omitempty"`
}

type Data struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Path     string    `json:"path,omitempty"`
	Entities []Entity  `json:"entities"`
}

// Collect reads every entity of b. A failure on one entity aborts the
// whole dump.
func Collect(ctx context.Context, b entity.Backend, now time.Time) (*Data, error) {
	list, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	data := &Data{Version: FormatVersion, Created: now.UTC(), Entities: make([]Entity, 0, len(list))}
	for _, s := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := collectEntity(ctx, b, s)
		if err != nil {
			return nil, fmt.Errorf("collect %q: %w", s.Name, err)
		}
		data.Entities = append(data.Entities, e)
	}
	return data, nil
}

func collectEntity(ctx context.Context, b entity.Backend, s entity.Summary) (Entity, error) {
	e := Entity{Summary: s, Config: make(map[string][]string)}
	put := func(key string) error {
		v, err := b.GetConfig(ctx, s.Name, key)
		if err != nil {
			return err
		}
		if len(v) > 0 {
			e.Config[key] = v
		}
		return nil
	}

	types, err := b.GetConfig(ctx, s.Name, entity.KeyNetwork)
	if err != nil {
		return e, err
	}
	for i := range types {
		for _, p := range entity.NetworkProps {
			if err := put(entity.NetworkKey(i, p)); err != nil {
				return e, err
			}
		}
	}
	for _, k := range entity.LimitKeys {
		if err := put(k); err != nil {
			return e, err
		}
	}

	snaps, err := b.ListSnapshots(ctx, s.Name)
	if err != nil {
		return e, err
	}
	e.Snapshots = snaps
	return e, nil
}

// Write encodes data as indented JSON into a zstd stream on w.
func Write(w io.Writer, data *Data) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return zw.Close()
}

// Read decodes a dump written by Write.
func Read(r io.Reader) (*Data, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var data Data
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("dump version %d: %w", data.Version, entity.ErrUnsupported)
	}
	return &data, nil
}

// FileName returns name with a .zst suffix, or a dated default when name
// is empty.
func FileName(name string, now time.Time) string {
	if name == "" {
		return fmt.Sprintf("lxcui-export-%s.json.zst", now.Format("2006-01-02"))
	}
	if !strings.HasSuffix(name, ".zst") {
		name += ".zst"
	}
	return name
}

// WriteFile writes data to path.
func WriteFile(path string, data *Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Write(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a dump from path.
func ReadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}
