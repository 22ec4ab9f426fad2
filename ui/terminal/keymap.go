// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package terminal

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/lxcui/ui/widget"
)

// KeyMap binds terminal keys to the symbolic keys the dialogs understand.
type KeyMap struct {
	Activate  key.Binding
	Cancel    key.Binding
	Tab       key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Insert    key.Binding
	Delete    key.Binding
	Redraw    key.Binding
	Help      key.Binding
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Tab, km.Toggle, km.Activate, km.Cancel, km.Help}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.PageUp, km.PageDown},
		{km.Home, km.End, km.Left, km.Right},
		{km.Tab, km.Toggle, km.Activate, km.Cancel},
		{km.Insert, km.Delete, km.Redraw, km.Help},
	}
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

var DefaultKeyMap = KeyMap{
	Activate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "choose"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "delete left"),
	),
	Insert: key.NewBinding(
		key.WithKeys("insert"),
		key.WithHelp("ins", "add"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "remove"),
	),
	Redraw: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "redraw"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "more keys"),
	),
}

// Translate maps msg to a symbolic key. Help is handled by the terminal
// itself and never translated.
func (km KeyMap) Translate(msg tea.KeyMsg) (widget.Key, bool) {
	bindings := []struct {
		b key.Binding
		k widget.Key
	}{
		{km.Activate, widget.K(widget.KeyEnter)},
		{km.Cancel, widget.K(widget.KeyCancel)},
		{km.Tab, widget.K(widget.KeyTab)},
		{km.Toggle, widget.R(' ')},
		{km.Up, widget.K(widget.KeyUp)},
		{km.Down, widget.K(widget.KeyDown)},
		{km.Left, widget.K(widget.KeyLeft)},
		{km.Right, widget.K(widget.KeyRight)},
		{km.PageUp, widget.K(widget.KeyPageUp)},
		{km.PageDown, widget.K(widget.KeyPageDown)},
		{km.Home, widget.K(widget.KeyHome)},
		{km.End, widget.K(widget.KeyEnd)},
		{km.Backspace, widget.K(widget.KeyBackspace)},
		{km.Insert, widget.K(widget.KeyInsertRow)},
		{km.Delete, widget.K(widget.KeyDeleteRow)},
		{km.Redraw, widget.K(widget.KeyRedraw)},
	}
	for _, e := range bindings {
		if key.Matches(msg, e.b) {
			return e.k, true
		}
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		return widget.R(msg.Runes[0]), true
	}
	return widget.Key{}, false
}
