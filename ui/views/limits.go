// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/ui/widget"
)

type limitField struct {
	key    string
	title  string
	filter widget.Filter
}

func (a *App) limitFields() []limitField {
	return []limitField{
		{entity.KeyMemoryLimit, i18n.T("limits.memory"), widget.FreeForm},
		{entity.KeyCPUSet, i18n.T("limits.cpuset", a.Host.CPUCores()), widget.Digits},
		{entity.KeyCPUShares, i18n.T("limits.cpushares"), widget.Digits},
		{entity.KeyTTY, i18n.T("limits.tty"), widget.Digits},
		{entity.KeyStartAuto, i18n.T("limits.autostart"), widget.Digits},
		{entity.KeyStartDelay, i18n.T("limits.delay"), widget.Digits},
		{entity.KeyStartOrder, i18n.T("limits.order"), widget.Digits},
	}
}

// editLimits edits resource limits and autostart settings of e. Fields
// left empty are not written.
func (a *App) editLimits(ctx context.Context, e entity.Summary) error {
	fields := a.limitFields()
	w, _ := a.Term.Size()
	cw := max(min(40, w/2), 3)
	b := a.place(2*cw, 5*fieldHeight)

	widgets := make([]widget.Widget, 0, len(fields)+2)
	for i, f := range fields {
		v, err := a.Backend.GetConfig(ctx, e.Name, f.key)
		if err != nil {
			return err
		}
		s := widget.NewSurface(b.y+(i/2)*fieldHeight, b.x+(i%2)*cw, fieldHeight, cw, f.title)
		widgets = append(widgets, widget.NewTextInput(f.key, s, f.filter, entity.First(v)))
	}
	ok, cancel := b.okCancel(((len(fields) + 1) / 2) * fieldHeight)
	widgets = append(widgets, ok, cancel)

	res, err := a.dialog(widgets...).Run(ctx, a.Term)
	if err != nil || !res.Pressed("ok") {
		return err
	}
	for _, f := range fields {
		if err := a.writeConfig(ctx, e.Name, f.key, res.String(f.key)); err != nil {
			return err
		}
	}
	return nil
}
