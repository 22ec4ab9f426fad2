// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package host answers questions about the machine lxcui runs on: its
// network interfaces, the cached container images and the CPU count.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	"github.com/toeirei/lxcui/internal/entity"
)

const (
	DefaultProcRoot = "/proc"
	DefaultCacheDir = "/var/cache/lxc/download"
)

// System reads the real host.
type System struct {
	ProcRoot string
	CacheDir string
	// KeepVeth keeps veth* interfaces in NetworkInterfaces.
	KeepVeth bool
}

var _ entity.Host = (*System)(nil)

func New(procRoot, cacheDir string) *System {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	return &System{ProcRoot: procRoot, CacheDir: cacheDir}
}

// NetworkInterfaces lists the interfaces in net/dev without the loopback
// and, unless KeepVeth is set, without container veth pairs.
func (s *System) NetworkInterfaces() ([]string, error) {
	pfs, err := procfs.NewFS(s.ProcRoot)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.ProcRoot, err)
	}
	devs, err := pfs.NetDev()
	if err != nil {
		return nil, fmt.Errorf("read net/dev: %w", err)
	}
	names := make([]string, 0, len(devs))
	for name := range devs {
		if name == "lo" || (!s.KeepVeth && strings.HasPrefix(name, "veth")) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// CachedTemplates finds <dist>/<release>/<arch> directories below the
// cache dir that hold a "default" image. A missing cache dir is not an
// error.
func (s *System) CachedTemplates() ([]entity.Template, error) {
	var out []entity.Template
	err := filepath.WalkDir(s.CacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.CacheDir {
				return filepath.SkipAll
			}
			return err
		}
		if !d.IsDir() || d.Name() != "default" {
			return nil
		}
		rel, err := filepath.Rel(s.CacheDir, filepath.Dir(path))
		if err != nil {
			return err
		}
		if parts := strings.Split(filepath.ToSlash(rel), "/"); len(parts) == 3 {
			out = append(out, entity.Template{Dist: parts[0], Release: parts[1], Arch: parts[2]})
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.CacheDir, err)
	}
	return out, nil
}

func (s *System) CPUCores() int { return runtime.NumCPU() }

// ReleaseInfo returns PRETTY_NAME from an os-release file, falling back to
// NAME and VERSION_ID.
func (s *System) ReleaseInfo(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fields := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if u, err := strconv.Unquote(v); err == nil {
			v = u
		} else {
			v = strings.Trim(v, `'"`)
		}
		fields[k] = v
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if p := fields["PRETTY_NAME"]; p != "" {
		return p, nil
	}
	return strings.TrimSpace(fields["NAME"] + " " + fields["VERSION_ID"]), nil
}
