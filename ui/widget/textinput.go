// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Filter decides which runes a TextInput accepts.
type Filter func(r rune) bool

// Digits accepts 0-9 only.
func Digits(r rune) bool { return r >= '0' && r <= '9' }

// FreeForm accepts letters, digits and "-_:/,.@ ".
func FreeForm(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_:/,.@ ", r)
}

// TextInput is a one-line editable field. Its length is capped at the
// surface width minus three. Edits repaint only the text from the first
// changed rune onward.
type TextInput struct {
	base
	value  []rune
	cursor int
	limit  int
	filter Filter

	// dirtyFrom is the first rune to repaint, -1 when clean.
	dirtyFrom int
	// erased is the number of cells to blank after the value.
	erased int
}

var _ Widget = (*TextInput)(nil)

// NewTextInput panics if the surface has no room for one row. A nil filter
// means FreeForm. The initial value is cut to the length limit.
func NewTextInput(id string, s *Surface, filter Filter, initial string) *TextInput {
	s.mustFit("text input", 1)
	if filter == nil {
		filter = FreeForm
	}
	t := &TextInput{
		base:      newBase(id, s),
		limit:     s.Width - 3,
		filter:    filter,
		dirtyFrom: -1,
	}
	t.SetValue(initial)
	return t
}

func (t *TextInput) Limit() int  { return t.limit }
func (t *TextInput) Cursor() int { return t.cursor }
func (t *TextInput) Text() string {
	return string(t.value)
}

func (t *TextInput) Value() any { return t.Text() }

// SetValue replaces the text and puts the cursor at its end.
func (t *TextInput) SetValue(v string) {
	r := []rune(v)
	if len(r) > t.limit {
		r = r[:t.limit]
	}
	t.erased = max(t.erased, t.width(t.value)-t.width(r))
	t.value = r
	t.cursor = len(r)
	t.dirtyFrom = 0
}

func (t *TextInput) Invalidate() {
	t.frameDirty = true
}

func (t *TextInput) HandleKey(k Key) (string, bool) {
	if r, ok := k.Text(); ok {
		t.insert(r)
		return "", false
	}
	switch k.Code {
	case KeyBackspace:
		t.deleteBackward()
	case KeyLeft:
		t.cursor = max(t.cursor-1, 0)
	case KeyRight:
		t.cursor = min(t.cursor+1, len(t.value))
	case KeyHome:
		t.cursor = 0
	case KeyEnd:
		t.cursor = len(t.value)
	}
	return "", false
}

func (t *TextInput) insert(r rune) {
	if !t.filter(r) || len(t.value) >= t.limit {
		return
	}
	t.value = append(t.value[:t.cursor], append([]rune{r}, t.value[t.cursor:]...)...)
	t.touch(t.cursor)
	t.cursor++
}

func (t *TextInput) deleteBackward() {
	if t.cursor == 0 {
		return
	}
	removed := t.value[t.cursor-1]
	t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
	t.cursor--
	t.touch(t.cursor)
	t.erased += runewidth.RuneWidth(removed)
}

func (t *TextInput) touch(from int) {
	if t.dirtyFrom < 0 || from < t.dirtyFrom {
		t.dirtyFrom = from
	}
}

func (t *TextInput) width(r []rune) int {
	return runewidth.StringWidth(string(r))
}

func (t *TextInput) Render(c Canvas) {
	y, x, _, _ := t.surface.Inner()
	if t.renderFrame(c) {
		t.dirtyFrom = 0
		t.erased = 0
	}
	if t.dirtyFrom < 0 {
		return
	}
	tail := string(t.value[t.dirtyFrom:]) + strings.Repeat(" ", t.erased)
	if tail != "" {
		c.Print(y, x+t.width(t.value[:t.dirtyFrom]), tail, t.styles.Content)
	}
	t.dirtyFrom, t.erased = -1, 0
}

// PlaceCaret puts the terminal caret at the cursor.
func (t *TextInput) PlaceCaret(c Canvas) {
	y, x, _, _ := t.surface.Inner()
	c.SetCaret(y, x+t.width(t.value[:t.cursor]))
}
