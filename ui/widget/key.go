// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import "fmt"

// KeyCode is a symbolic key. The terminal layer maps concrete input to it.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeySpace
	KeyCancel
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyInsertRow
	KeyDeleteRow
	// KeyRedraw asks for a full repaint, for example after a resize.
	KeyRedraw
)

var keyNames = map[KeyCode]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeySpace:     "space",
	KeyCancel:    "cancel",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyBackspace: "backspace",
	KeyInsertRow: "insert",
	KeyDeleteRow: "delete",
	KeyRedraw:    "redraw",
}

func (c KeyCode) String() string {
	if s, ok := keyNames[c]; ok {
		return s
	}
	return fmt.Sprintf("key(%d)", int(c))
}

// Key is one input event. Rune is only meaningful for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// K builds a symbolic key.
func K(code KeyCode) Key { return Key{Code: code} }

// R builds a printable key. A space is reported as KeySpace.
func R(r rune) Key {
	if r == ' ' {
		return Key{Code: KeySpace, Rune: ' '}
	}
	return Key{Code: KeyRune, Rune: r}
}

// Text returns the printable rune carried by k, if any.
func (k Key) Text() (rune, bool) {
	switch k.Code {
	case KeyRune:
		return k.Rune, true
	case KeySpace:
		return ' ', true
	}
	return 0, false
}

func (k Key) String() string {
	if k.Code == KeyRune {
		return string(k.Rune)
	}
	return k.Code.String()
}
