// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

// MenuList is a read-only SelectionList whose value is the cursor index.
// The cursor row is always highlighted.
//
// A master MenuList emits the item under the cursor whenever the cursor
// moves, so dependent widgets such as a context-sensitive menu bar can
// follow it.
type MenuList struct {
	*SelectionList
}

var _ Widget = (*MenuList)(nil)

func NewMenuList(id string, s *Surface, items []string, initial int) *MenuList {
	l := NewSelectionList(id, s, items, initial)
	l.alwaysHighlight = true
	return &MenuList{SelectionList: l}
}

func (m *MenuList) HandleKey(k Key) (string, bool) {
	before := m.index
	if !m.navigate(k) || !m.master || m.index == before {
		return "", false
	}
	return m.items[m.index], true
}
