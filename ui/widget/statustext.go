// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusText is a static label wrapped to the surface width minus two. It
// never takes focus.
type StatusText struct {
	base
	text  string
	lines []string
	dirty bool
}

var _ Widget = (*StatusText)(nil)

func NewStatusText(id string, s *Surface, text string) *StatusText {
	s.mustFit("status text", 1)
	st := &StatusText{base: newBase(id, s)}
	st.SetText(text)
	return st
}

// Wrap greedily breaks text into lines no wider than width. Words longer
// than width are split.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	wrapped := ansi.Hardwrap(ansi.Wordwrap(text, width, ""), width, false)
	lines := strings.Split(wrapped, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func (st *StatusText) Text() string    { return st.text }
func (st *StatusText) Lines() []string { return st.lines }
func (st *StatusText) Value() any      { return st.text }
func (st *StatusText) Focusable() bool { return false }
func (st *StatusText) Invalidate()     { st.frameDirty, st.dirty = true, true }

func (st *StatusText) SetText(text string) {
	st.text = text
	st.lines = Wrap(text, st.surface.Width-2)
	st.dirty = true
}

func (st *StatusText) HandleKey(Key) (string, bool) { return "", false }

func (st *StatusText) Render(c Canvas) {
	full := st.renderFrame(c)
	if !full && !st.dirty {
		return
	}
	y, x, h, w := st.surface.Inner()
	if !st.surface.Border {
		x++
		w -= 2
	}
	for row := 0; row < h; row++ {
		line := ""
		if row < len(st.lines) {
			line = st.lines[row]
		}
		c.Print(y+row, x, padRight(line, w), st.styles.Content)
	}
	st.dirty = false
}
