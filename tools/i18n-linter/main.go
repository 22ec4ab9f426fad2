// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the message ids passed to i18n.T against the locale
// files: every id used in code must exist in the primary locale, every
// other locale must carry the primary ids, and unused ids are reported.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found id.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.en.yaml"
)

var callRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

func main() {
	os.Exit(run(".", os.Stdout))
}

// run lints the tree below root and returns the exit code.
func run(root string, out io.Writer) int {
	used, err := findUsedIDs(root)
	if err != nil {
		fmt.Fprintf(out, "error scanning sources: %v\n", err)
		return 1
	}
	dir := filepath.Join(root, localesDir)
	primary, err := loadIDs(filepath.Join(dir, primaryLocale))
	if err != nil {
		fmt.Fprintf(out, "error loading %s: %v\n", primaryLocale, err)
		return 1
	}
	fmt.Fprintf(out, "%d ids used in code, %d in %s\n", len(used), len(primary), primaryLocale)

	failed := false
	for _, id := range sortedKeys(used) {
		if _, ok := primary[id]; !ok {
			loc := used[id]
			fmt.Fprintf(out, "undefined: %s (%s:%d)\n", id, loc.Filepath, loc.Line)
			failed = true
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		fmt.Fprintf(out, "error listing locales: %v\n", err)
		return 1
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		ids, err := loadIDs(file)
		if err != nil {
			fmt.Fprintf(out, "error loading %s: %v\n", file, err)
			failed = true
			continue
		}
		for _, id := range sortedKeys(primary) {
			if _, ok := ids[id]; !ok {
				fmt.Fprintf(out, "missing in %s: %s\n", filepath.Base(file), id)
				failed = true
			}
		}
	}

	for _, id := range sortedKeys(primary) {
		if _, ok := used[id]; !ok {
			fmt.Fprintf(out, "orphaned: %s\n", id)
		}
	}

	if failed {
		fmt.Fprintln(out, "locale files need attention")
		return 1
	}
	fmt.Fprintln(out, "locale files are consistent")
	return 0
}

// findUsedIDs scans non-test Go files below root for i18n.T("id") calls.
// Directories starting with _ or . and the tools directory are skipped.
func findUsedIDs(root string) (map[string]Location, error) {
	ids := make(map[string]Location)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range callRe.FindAllStringSubmatch(line, -1) {
				if _, seen := ids[m[1]]; !seen {
					ids[m[1]] = Location{Filepath: path, Line: i + 1}
				}
			}
		}
		return nil
	})
	return ids, err
}

// loadIDs reads a locale file and returns its flattened message ids.
func loadIDs(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	ids := make(map[string]struct{})
	flattenYAML("", data, ids)
	return ids, nil
}

// flattenYAML converts a nested map into dot-separated ids.
func flattenYAML(prefix string, node any, ids map[string]struct{}) {
	v, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			ids[prefix] = struct{}{}
		}
		return
	}
	for k, val := range v {
		next := k
		if prefix != "" {
			next = prefix + "." + k
		}
		flattenYAML(next, val, ids)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
