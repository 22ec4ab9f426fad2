// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package lxc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/toeirei/lxcui/internal/entity"
)

// File keys differ from the keys the editors use since LXC 3.0. Reads accept
// both spellings, writes use the current one.
var aliases = []struct{ api, file string }{
	{entity.KeyTTY, "lxc.tty.max"},
}

const netFilePrefix = "lxc.net."

// Interface properties renamed in LXC 3.0, in the editors' spelling first.
var propAliases = []struct{ api, file string }{
	{"ipv4", "ipv4.address"},
	{"ipv6", "ipv6.address"},
}

func toFileKey(key string) string {
	if n, prop, ok := networkIndex(key); ok {
		for _, a := range propAliases {
			if prop == a.api {
				prop = a.file
			}
		}
		out := netFilePrefix + strconv.Itoa(n)
		if prop != "" {
			out += "." + prop
		}
		return out
	}
	for _, a := range aliases {
		if key == a.api {
			return a.file
		}
	}
	return key
}

func toAPIKey(key string) string {
	if rest, ok := strings.CutPrefix(key, netFilePrefix); ok {
		num, prop, _ := strings.Cut(rest, ".")
		if n, err := strconv.Atoi(num); err == nil {
			for _, a := range propAliases {
				if prop == a.file {
					prop = a.api
				}
			}
			return entity.NetworkKey(n, prop)
		}
	}
	for _, a := range aliases {
		if key == a.file {
			return a.api
		}
	}
	return key
}

type configLine struct {
	raw   string
	key   string
	value string
}

// ConfigFile is a container config kept line by line so comments and
// ordering survive an edit. Keys are stored in the editors' spelling.
type ConfigFile struct {
	lines []configLine
}

func ParseConfig(r io.Reader) (*ConfigFile, error) {
	c := &ConfigFile{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw := sc.Text()
		trimmed := strings.TrimSpace(raw)
		k, v, ok := strings.Cut(trimmed, "=")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || !ok {
			c.lines = append(c.lines, configLine{raw: raw})
			continue
		}
		c.lines = append(c.lines, configLine{
			key:   toAPIKey(strings.TrimSpace(k)),
			value: strings.TrimSpace(v),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns every value of key in file order.
func (c *ConfigFile) Get(key string) []string {
	var out []string
	for _, l := range c.lines {
		if l.key == key {
			out = append(out, l.value)
		}
	}
	return out
}

// Networks returns the type of each configured interface by index.
func (c *ConfigFile) Networks() []string {
	var types []string
	for i := 0; ; i++ {
		t := c.Get(entity.NetworkKey(i, "type"))
		if len(t) == 0 {
			return types
		}
		types = append(types, t[0])
	}
}

// Set appends key = value after the last line of the same interface or,
// for other keys, at the end.
func (c *ConfigFile) Set(key, value string) {
	at := len(c.lines)
	if index, _, ok := networkIndex(key); ok {
		prefix := entity.NetworkKey(index, "") + "."
		for i, l := range c.lines {
			if strings.HasPrefix(l.key, prefix) {
				at = i + 1
			}
		}
	}
	line := configLine{key: key, value: value}
	c.lines = append(c.lines[:at], append([]configLine{line}, c.lines[at:]...)...)
}

// Clear removes key. A whole interface or a non-interface key also takes
// every key below it, and clearing an interface renumbers the ones after
// it. Interface properties match exactly so clearing ipv4 keeps
// ipv4.gateway.
func (c *ConfigFile) Clear(key string) {
	index, prop, ok := networkIndex(key)
	prefix := key + "."
	kept := c.lines[:0]
	for _, l := range c.lines {
		below := strings.HasPrefix(l.key, prefix) && (!ok || prop == "")
		if l.key != "" && (l.key == key || below) {
			continue
		}
		kept = append(kept, l)
	}
	c.lines = kept

	if !ok || prop != "" {
		return
	}
	for i, l := range c.lines {
		if n, p, ok := networkIndex(l.key); ok && n > index {
			c.lines[i].key = entity.NetworkKey(n-1, p)
		}
	}
}

// networkIndex splits lxc.network.N[.prop].
func networkIndex(key string) (int, string, bool) {
	rest, ok := strings.CutPrefix(key, entity.KeyNetwork+".")
	if !ok {
		return 0, "", false
	}
	num, prop, _ := strings.Cut(rest, ".")
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", false
	}
	return n, prop, true
}

func (c *ConfigFile) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, l := range c.lines {
		text := l.raw
		if l.key != "" {
			text = toFileKey(l.key) + " = " + l.value
		}
		n, err := fmt.Fprintln(w, text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
