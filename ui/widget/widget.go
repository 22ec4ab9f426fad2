// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

// Callback is invoked by a Dialog on every widget that registered one when
// the master widget emits a signal. w is the widget the callback belongs to.
type Callback func(w Widget, signal string)

// Widget is the capability set shared by every widget kind.
type Widget interface {
	ID() string
	Surface() *Surface

	// Render paints whatever changed since the last call.
	Render(c Canvas)
	// Invalidate forces the next Render to repaint everything.
	Invalidate()

	// HandleKey applies k. A master widget may return a signal value that
	// the Dialog broadcasts to the callbacks of all other widgets.
	HandleKey(k Key) (signal string, emitted bool)
	Value() any

	Focus(focused bool)
	Focusable() bool

	Master() bool
	Callback() Callback
}

// base holds the fields every widget shares.
type base struct {
	id       string
	surface  *Surface
	styles   Styles
	focused  bool
	master   bool
	callback Callback

	// frameDirty means border and title need a repaint.
	frameDirty bool
	titleDirty bool
}

func newBase(id string, s *Surface) base {
	return base{id: id, surface: s, styles: DefaultStyles(), frameDirty: true}
}

func (b *base) ID() string           { return b.id }
func (b *base) Surface() *Surface    { return b.surface }
func (b *base) Master() bool         { return b.master }
func (b *base) Callback() Callback   { return b.callback }
func (b *base) Focused() bool        { return b.focused }
func (b *base) SetMaster(m bool)     { b.master = m }
func (b *base) OnSignal(cb Callback) { b.callback = cb }

// SetStyles replaces the widget styles and schedules a full repaint.
func (b *base) SetStyles(st Styles) {
	b.styles = st
	b.frameDirty = true
}

// SetTitle changes the title in the border.
func (b *base) SetTitle(title string) {
	b.surface.Title = title
	b.frameDirty = true
}

func (b *base) Focus(focused bool) {
	if b.focused != focused {
		b.focused = focused
		b.titleDirty = true
	}
}

func (b *base) Focusable() bool { return true }

// renderFrame paints the frame when needed and reports whether it did, in
// which case the content has been wiped too.
func (b *base) renderFrame(c Canvas) bool {
	if b.frameDirty {
		b.surface.DrawFrame(c, b.styles, b.focused)
		b.frameDirty, b.titleDirty = false, false
		return true
	}
	if b.titleDirty {
		b.surface.DrawTitle(c, b.styles, b.focused)
		b.titleDirty = false
	}
	return false
}
