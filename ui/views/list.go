// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"fmt"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/ui/widget"
	"github.com/toeirei/lxcui/util/slicest"
)

// listWidth is the width of the container list.
const listWidth = 70

// unknownSize stands in for a size still being measured.
const unknownSize = "-"

func (a *App) row(e entity.Summary) string {
	size, ok := a.sizes[e.Name]
	if !ok {
		size = unknownSize
	}
	return fmt.Sprintf("[%s] %-24s %10s  %s", e.State.Flag(), e.Name, size, e.Release)
}

// menuText is the menu bar for e: the verbs available for any container
// plus the ones that fit its state.
func menuText(e entity.Summary, ok bool) string {
	text := i18n.T("menu.any")
	switch {
	case !ok:
	case e.Running() || e.Frozen():
		text += "  " + i18n.T("menu.running")
	case e.Stopped():
		text += "  " + i18n.T("menu.stopped")
	}
	return text
}

// runList shows the container list until a hotkey picks an action or the
// user quits.
func (a *App) runList(ctx context.Context) (quit bool, err error) {
	a.Term.Clear()
	w, h := a.Term.Size()
	lw := min(listWidth, w)
	s := widget.NewSurface(0, max((w-lw)/2, 0), max(h-1, 3), lw, i18n.T("list.title"))

	list := widget.NewMenuList("list", s, slicest.Map(a.entities, a.row), a.cursor)
	list.SetMaster(true)
	current, ok := a.selected()
	bar := widget.NewStatusText("menu", &widget.Surface{Y: h - 1, Width: w, Height: 1}, menuText(current, ok))
	bar.OnSignal(func(widget.Widget, string) {
		a.cursor = list.Index()
		bar.SetText(menuText(a.selected()))
	})

	widgets := []widget.Widget{list, bar}
	if len(a.entities) == 0 {
		iy, ix, ih, iw := s.Inner()
		empty := i18n.T("list.empty")
		widgets = append(widgets, widget.NewStatusText("empty",
			&widget.Surface{Y: iy + ih/2, X: ix + max(iw/2-len(empty)/2-1, 0), Width: len(empty) + 2, Height: 1}, empty))
	}

	d := a.dialog(widgets...)
	d.BeforeDraw(func(*widget.Dialog) {
		if a.collectSizes() {
			list.SetItems(slicest.Map(a.entities, a.row), list.Index())
		}
	})
	for r, act := range a.actions() {
		d.Hotkey(widget.R(r), func(d *widget.Dialog) {
			a.action = act
			d.Cancel()
		})
	}
	d.Hotkey(widget.R('q'), func(d *widget.Dialog) {
		quit = true
		d.Cancel()
	})

	a.list = list
	res, err := d.Run(ctx, a.Term)
	if i := list.Index(); i >= 0 {
		a.cursor = i
	}
	if err != nil {
		return true, err
	}
	return quit || (!res.Confirmed && a.action == nil), nil
}

// markWait paints the wait marker over the selected row.
func (a *App) markWait() {
	if a.list == nil || a.list.Len() == 0 {
		return
	}
	y, x, _, w := a.list.Surface().Inner()
	a.Term.Print(y+a.list.Row(), x+w/2-3, i18n.T("list.wait"), a.Styles.Highlight.Blink(true))
	a.Term.Flush()
}
