// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SelectionList is a paginated list over a backing sequence of strings.
// Only the current page is painted. Moving within a page repaints the two
// rows whose highlight changed; crossing a page boundary repaints the page.
type SelectionList struct {
	base
	items    []string
	index    int
	capacity int

	// alwaysHighlight keeps the cursor row highlighted without focus.
	alwaysHighlight bool
	// decorate prefixes row i, for example with a choice marker.
	decorate func(i int) string

	paintedPage int
	dirty       []int
}

// NewSelectionList panics on geometry smaller than 3x3 or an initial index
// outside the items.
func NewSelectionList(id string, s *Surface, items []string, initial int) *SelectionList {
	s.mustFit("selection list", 1)
	if len(items) > 0 && (initial < 0 || initial >= len(items)) {
		panic(fmt.Sprintf("widget: selection list %q: initial index %d out of range [0,%d)", id, initial, len(items)))
	}
	_, _, h, _ := s.Inner()
	return &SelectionList{
		base:        newBase(id, s),
		items:       items,
		index:       max(initial, 0),
		capacity:    h,
		paintedPage: -1,
	}
}

func (l *SelectionList) Len() int      { return len(l.items) }
func (l *SelectionList) Capacity() int { return l.capacity }
func (l *SelectionList) Items() []string {
	return l.items
}

// Index returns the absolute cursor index, or -1 for an empty list.
func (l *SelectionList) Index() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.index
}

func (l *SelectionList) Page() int { return PageOf(l.index, l.capacity) }
func (l *SelectionList) Row() int  { return RowOf(l.index, l.capacity) }

// Selected returns the item under the cursor.
func (l *SelectionList) Selected() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[l.index], true
}

func (l *SelectionList) Value() any { return l.Index() }

// SetItems swaps the backing sequence. The cursor is kept where possible.
func (l *SelectionList) SetItems(items []string, index int) {
	l.items = items
	l.index = max(0, min(index, len(items)-1))
	l.Invalidate()
}

func (l *SelectionList) Invalidate() {
	l.frameDirty = true
	l.paintedPage = -1
	l.dirty = l.dirty[:0]
}

func (l *SelectionList) Focus(focused bool) {
	if l.focused != focused && !l.alwaysHighlight {
		l.markRow(l.index)
	}
	l.base.Focus(focused)
}

func (l *SelectionList) MoveFirst() { l.moveTo(0) }

func (l *SelectionList) MoveLast() { l.moveTo(len(l.items) - 1) }

// PageDown jumps to the first row of the next page if there is one.
func (l *SelectionList) PageDown() {
	next := IndexOf(l.Page()+1, 0, l.capacity)
	if next < len(l.items) {
		l.moveTo(next)
	}
}

// PageUp jumps to the first row of the previous page.
func (l *SelectionList) PageUp() {
	if page := l.Page(); page > 0 {
		l.moveTo(IndexOf(page-1, 0, l.capacity))
	}
}

func (l *SelectionList) LineDown() {
	if l.index < len(l.items)-1 {
		l.moveTo(l.index + 1)
	}
}

func (l *SelectionList) LineUp() {
	if l.index > 0 {
		l.moveTo(l.index - 1)
	}
}

func (l *SelectionList) moveTo(i int) {
	if len(l.items) == 0 || i < 0 || i >= len(l.items) || i == l.index {
		return
	}
	old := l.index
	l.index = i
	if PageOf(old, l.capacity) == PageOf(i, l.capacity) {
		l.markRow(old)
		l.markRow(i)
	}
}

func (l *SelectionList) markRow(i int) {
	if i >= 0 && i < len(l.items) {
		l.dirty = append(l.dirty, i)
	}
}

// navigate applies the navigation keys and reports whether k was one.
func (l *SelectionList) navigate(k Key) bool {
	switch k.Code {
	case KeyUp:
		l.LineUp()
	case KeyDown:
		l.LineDown()
	case KeyPageUp:
		l.PageUp()
	case KeyPageDown:
		l.PageDown()
	case KeyHome:
		l.MoveFirst()
	case KeyEnd:
		l.MoveLast()
	default:
		return false
	}
	return true
}

func (l *SelectionList) HandleKey(k Key) (string, bool) {
	l.navigate(k)
	return "", false
}

func (l *SelectionList) Render(c Canvas) {
	full := l.renderFrame(c)
	if full || l.Page() != l.paintedPage {
		l.paintPage(c)
	} else {
		for _, i := range l.dirty {
			if PageOf(i, l.capacity) == l.paintedPage {
				l.paintRow(c, i)
			}
		}
	}
	l.dirty = l.dirty[:0]
	if len(l.items) > l.capacity {
		l.surface.DrawIndicator(c, l.styles, fmt.Sprintf("%3d%%", ScrollPercent(l.Page(), l.Row(), l.capacity, len(l.items))))
	}
}

func (l *SelectionList) paintPage(c Canvas) {
	page := l.Page()
	y, x, _, w := l.surface.Inner()
	for row := 0; row < l.capacity; row++ {
		i := IndexOf(page, row, l.capacity)
		if i < len(l.items) {
			l.paintRow(c, i)
		} else {
			c.Fill(y+row, x, 1, w, l.styles.Content)
		}
	}
	l.paintedPage = page
}

func (l *SelectionList) paintRow(c Canvas, i int) {
	y, x, _, w := l.surface.Inner()
	text := l.items[i]
	if l.decorate != nil {
		text = l.decorate(i) + text
	}
	text = padRight(ansi.Truncate(text, w, ""), w)
	c.Print(y+RowOf(i, l.capacity), x, text, l.rowStyle(i))
}

func (l *SelectionList) rowStyle(i int) lipgloss.Style {
	if i == l.index && (l.alwaysHighlight || l.focused) {
		return l.styles.Highlight
	}
	return l.styles.Content
}

func padRight(s string, width int) string {
	if n := width - ansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
