// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"errors"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/ui/widget"
	"github.com/toeirei/lxcui/util/slicest"
)

// browseSnapshots lists the snapshots of e. INS takes one, DEL destroys
// the one under the cursor and Restore restores the chosen one.
func (a *App) browseSnapshots(ctx context.Context, e entity.Summary) error {
	snaps, err := a.Backend.ListSnapshots(ctx, e.Name)
	if err != nil {
		return err
	}

	_, h := a.Term.Size()
	b := a.place(formWidth, 2*fieldHeight+12)
	lh := max(min(h-b.y-2*fieldHeight, 12), 3)
	list := widget.NewRadioList("snapshot",
		widget.NewSurface(b.y, b.x, lh, b.width, i18n.T("snapshots.title", e.Name)),
		slicest.Map(snaps, entity.Snapshot.String), -1)
	help := widget.NewStatusText("help", b.field(lh, i18n.T("hotkeys.title")), i18n.T("snapshots.hotkeys"))
	restore, cancel := b.buttons(lh+fieldHeight, "restore", i18n.T("button.restore"), "cancel", i18n.T("button.cancel"))

	var opErr error
	fail := func(err error) { opErr = errors.Join(opErr, err) }
	reload := func() {
		fresh, err := a.Backend.ListSnapshots(ctx, e.Name)
		if err != nil {
			fail(err)
			return
		}
		snaps = fresh
		list.SetItems(slicest.Map(snaps, entity.Snapshot.String), list.Index())
	}
	d := a.dialog(list, help, restore, cancel)
	d.Hotkey(widget.K(widget.KeyInsertRow), func(*widget.Dialog) {
		logging.Infof("snapshot of %s", e.Name)
		if err := a.Backend.TakeSnapshot(ctx, e.Name); err != nil {
			fail(err)
			return
		}
		reload()
	})
	d.Hotkey(widget.K(widget.KeyDeleteRow), func(*widget.Dialog) {
		i := list.Index()
		if i < 0 || i >= len(snaps) {
			return
		}
		logging.Infof("destroying snapshot %s of %s", snaps[i].Name, e.Name)
		if err := a.Backend.DestroySnapshot(ctx, e.Name, snaps[i].Name); err != nil {
			fail(err)
			return
		}
		reload()
	})

	res, err := d.Run(ctx, a.Term)
	if err != nil {
		return err
	}
	if opErr != nil {
		return opErr
	}
	if !res.Pressed("restore") {
		return nil
	}
	i := list.Confirmed()
	if i < 0 {
		i = list.Index()
	}
	if i < 0 || i >= len(snaps) {
		return nil
	}
	logging.Infof("restoring %s to %s", e.Name, snaps[i].Name)
	return a.Backend.RestoreSnapshot(ctx, e.Name, snaps[i].Name)
}
