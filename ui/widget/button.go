// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import "github.com/charmbracelet/x/ansi"

// Button becomes confirmed on Enter or Space. A confirmed button ends the
// dialog it belongs to.
type Button struct {
	base
	label     string
	confirmed bool
	dirty     bool
}

var _ Widget = (*Button)(nil)

func NewButton(id string, s *Surface, label string) *Button {
	s.mustFit("button", 1)
	return &Button{base: newBase(id, s), label: label, dirty: true}
}

func (b *Button) Label() string     { return b.label }
func (b *Button) IsConfirmed() bool { return b.confirmed }
func (b *Button) Value() any        { return b.confirmed }

// Press confirms the button.
func (b *Button) Press() {
	b.confirmed = true
}

func (b *Button) Focus(focused bool) {
	if b.focused != focused {
		b.dirty = true
	}
	b.base.Focus(focused)
}

func (b *Button) Invalidate() {
	b.frameDirty, b.dirty = true, true
}

func (b *Button) HandleKey(k Key) (string, bool) {
	if k.Code == KeyEnter || k.Code == KeySpace {
		b.Press()
	}
	return "", false
}

func (b *Button) Render(c Canvas) {
	if !b.renderFrame(c) && !b.dirty {
		return
	}
	y, x, _, w := b.surface.Inner()
	label := ansi.Truncate(b.label, w, "")
	style := b.styles.Content
	if b.focused {
		style = b.styles.Highlight
	}
	c.Print(y, x+(w-ansi.StringWidth(label))/2, label, style)
	b.dirty = false
}
