// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package terminal

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// footer is the key help line below the dialogs. Expanded, it covers the
// bottom of the frame with the full key list.
type footer struct {
	help     help.Model
	keys     help.KeyMap
	expanded bool
}

func newFooter(keys help.KeyMap) footer {
	return footer{help: help.New(), keys: keys}
}

func (f *footer) setWidth(width int) { f.help.Width = width }

func (f *footer) toggle() { f.expanded = !f.expanded }

func (f footer) lines() []string {
	if f.expanded {
		return strings.Split(f.help.FullHelpView(f.keys.FullHelp()), "\n")
	}
	return []string{shortHelpView(f.help, f.keys.ShortHelp())}
}

// render stacks frame and the footer into height lines.
func (f footer) render(frame string, height int) string {
	if height <= 0 {
		return frame
	}
	var lines []string
	if frame != "" {
		lines = strings.Split(frame, "\n")
	}
	foot := f.lines()
	keep := max(height-len(foot), 0)
	for len(lines) < keep {
		lines = append(lines, "")
	}
	lines = append(lines[:keep], foot...)
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

// shortHelpView renders enabled bindings on one line and ends with an
// ellipsis instead of wrapping once the width runs out.
func shortHelpView(m help.Model, bindings []key.Binding) string {
	var items []string
	separator := m.Styles.ShortSeparator.Inline(true).Render(m.ShortSeparator)
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		var sep string
		if len(items) > 0 {
			sep = separator
		}
		items = append(items, sep+
			m.Styles.ShortKey.Inline(true).Render(kb.Help().Key)+" "+
			m.Styles.ShortDesc.Inline(true).Render(kb.Help().Desc))
	}

	if m.Width <= 0 {
		return strings.Join(items, "")
	}

	var b strings.Builder
	var usedWidth int
	tail := " " + m.Styles.Ellipsis.Inline(true).Render(m.Ellipsis)
	tailLen := lipgloss.Width(tail)
	for i, item := range items {
		itemLen := lipgloss.Width(item)
		if i < len(items)-1 {
			if usedWidth+itemLen+tailLen <= m.Width {
				usedWidth += itemLen
				b.WriteString(item)
				continue
			}
			b.WriteString(tail)
			break
		}
		if usedWidth+itemLen <= m.Width {
			b.WriteString(item)
		} else if usedWidth+tailLen <= m.Width {
			b.WriteString(tail)
		}
	}
	return b.String()
}
