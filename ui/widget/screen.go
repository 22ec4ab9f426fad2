// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is what widgets paint on.
type Canvas interface {
	Print(y, x int, text string, style lipgloss.Style)
	Fill(y, x, height, width int, style lipgloss.Style)
	SetCaret(y, x int)
	HideCaret()
}

// Screen is a Canvas backed by a cell buffer. Panels are painted in call
// order, so whatever is painted last ends up on top. It is safe for use by
// the size worker while the input loop paints.
type Screen struct {
	mu            sync.Mutex
	width, height int
	buf           *cellbuf.Buffer
	caretY        int
	caretX        int
	caretOn       bool
	writes        int
	caretStyle    lipgloss.Style
	onFlush       func(frame string)
}

var _ Display = (*Screen)(nil)

func NewScreen(width, height int) *Screen {
	return &Screen{
		width:      width,
		height:     height,
		buf:        cellbuf.NewBuffer(width, height),
		caretStyle: lipgloss.NewStyle().Reverse(true),
	}
}

// OnFlush sets the function that receives every flushed frame.
func (s *Screen) OnFlush(fn func(frame string)) {
	s.mu.Lock()
	s.onFlush = fn
	s.mu.Unlock()
}

// Flush hands the current frame to the OnFlush function.
func (s *Screen) Flush() {
	s.mu.Lock()
	fn := s.onFlush
	s.mu.Unlock()
	if fn != nil {
		fn(s.Frame())
	}
}

func (s *Screen) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize drops the current content.
func (s *Screen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.buf = cellbuf.NewBuffer(width, height)
	s.caretOn = false
}

// Clear blanks the whole screen.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = cellbuf.NewBuffer(s.width, s.height)
}

func (s *Screen) Print(y, x int, text string, style lipgloss.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 || y >= s.height || x < 0 || x >= s.width || text == "" {
		return
	}
	w := ansi.StringWidth(text)
	if x+w > s.width {
		text = ansi.Truncate(text, s.width-x, "")
		w = ansi.StringWidth(text)
	}
	if w == 0 {
		return
	}
	cellbuf.SetContentRect(s.buf, style.Render(text), cellbuf.Rect(x, y, w, 1))
	s.writes++
}

func (s *Screen) Fill(y, x, height, width int, style lipgloss.Style) {
	if width <= 0 {
		return
	}
	blank := strings.Repeat(" ", width)
	for row := 0; row < height; row++ {
		s.Print(y+row, x, blank, style)
	}
}

func (s *Screen) SetCaret(y, x int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caretY, s.caretX, s.caretOn = y, x, true
}

func (s *Screen) HideCaret() {
	s.mu.Lock()
	s.caretOn = false
	s.mu.Unlock()
}

// Caret returns the caret position and whether it is shown.
func (s *Screen) Caret() (y, x int, shown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caretY, s.caretX, s.caretOn
}

// Writes counts Print calls since the last ResetWrites.
func (s *Screen) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Screen) ResetWrites() {
	s.mu.Lock()
	s.writes = 0
	s.mu.Unlock()
}

// Line returns row y without styling.
func (s *Screen) Line(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 || y >= s.height {
		return ""
	}
	_, line := cellbuf.RenderLine(s.buf, y)
	return ansi.Strip(line)
}

// Frame renders the whole screen, including the caret.
func (s *Screen) Frame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]string, s.height)
	for y := 0; y < s.height; y++ {
		_, line := cellbuf.RenderLine(s.buf, y)
		if s.caretOn && y == s.caretY {
			line = s.withCaret(line)
		}
		lines[y] = line
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) withCaret(line string) string {
	x := s.caretX
	if x < 0 || x >= s.width {
		return line
	}
	if pad := x + 1 - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	head := ansi.Truncate(line, x, "")
	under := ansi.Strip(ansi.TruncateLeft(ansi.Truncate(line, x+1, ""), x, ""))
	if under == "" {
		under = " "
	}
	tail := ansi.TruncateLeft(line, x+1, "")
	return head + s.caretStyle.Render(under) + tail
}
