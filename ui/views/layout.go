// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/ui/widget"
)

const (
	// formWidth is the width of a one-column form.
	formWidth = 50
	// fieldHeight is a bordered single line.
	fieldHeight = 3
	// formTop is the row forms start at when the screen has room.
	formTop = 2
)

// box is the area a dialog is laid out in.
type box struct {
	y, x, width int
}

// place centers a width x height area horizontally, formTop rows down when
// it fits.
func (a *App) place(width, height int) box {
	w, h := a.Term.Size()
	width = min(width, w)
	top := min(formTop, max(h-height, 0))
	return box{y: top, x: max((w-width)/2, 0), width: width}
}

// field returns the surface of a single line input at row.
func (b box) field(row int, title string) *widget.Surface {
	return widget.NewSurface(b.y+row, b.x, fieldHeight, b.width, title)
}

// buttons returns two side by side buttons at row.
func (b box) buttons(row int, left, leftLabel, right, rightLabel string) (*widget.Button, *widget.Button) {
	half := b.width / 2
	l := widget.NewButton(left, widget.NewSurface(b.y+row, b.x, fieldHeight, half, ""), leftLabel)
	r := widget.NewButton(right, widget.NewSurface(b.y+row, b.x+half, fieldHeight, b.width-half, ""), rightLabel)
	return l, r
}

// okCancel is the usual button pair.
func (b box) okCancel(row int) (*widget.Button, *widget.Button) {
	return b.buttons(row, "ok", i18n.T("button.ok"), "cancel", i18n.T("button.cancel"))
}

type styled interface {
	SetStyles(st widget.Styles)
}

// dialog builds a Dialog on the terminal with the App styles applied.
func (a *App) dialog(widgets ...widget.Widget) *widget.Dialog {
	for _, w := range widgets {
		if s, ok := w.(styled); ok {
			s.SetStyles(a.Styles)
		}
	}
	return widget.NewDialog(a.Term, widgets...)
}
