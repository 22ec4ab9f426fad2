// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/ui/widget"
	"github.com/toeirei/lxcui/util/slicest"
)

type createForm struct {
	Name     string `mapstructure:"name"`
	Template string `mapstructure:"template"`
}

// create asks for a name and a template, Default or one already in the
// download cache, and creates the container.
func (a *App) create(ctx context.Context) error {
	templates, err := a.Host.CachedTemplates()
	if err != nil {
		logging.Warnf("scan template cache: %v", err)
		templates = nil
	}
	items := append([]string{entity.Template{}.String()}, slicest.Map(templates, entity.Template.String)...)

	_, h := a.Term.Size()
	b := a.place(formWidth, 2*fieldHeight+20)
	listHeight := max(min(h-b.y-2*fieldHeight, 20), 3)
	name := widget.NewTextInput("name", b.field(0, i18n.T("create.name")), widget.FreeForm, "")
	choice := widget.NewRadioList("template",
		widget.NewSurface(b.y+fieldHeight, b.x, listHeight, b.width, i18n.T("create.template")), items, 0)
	ok, cancel := b.okCancel(fieldHeight + listHeight)

	res, err := a.dialog(name, choice, ok, cancel).Run(ctx, a.Term)
	if err != nil || !res.Pressed("ok") {
		return err
	}
	var form createForm
	if err := res.Decode(&form); err != nil {
		return err
	}
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		return nil
	}

	var tmpl entity.Template
	if i := slices.Index(items, form.Template); i > 0 {
		tmpl = templates[i-1]
	}
	logging.Infof("creating %s from %s", form.Name, tmpl)
	if c, ok := a.Backend.(creator); ok {
		cmd, err := c.CreateCommand(form.Name, tmpl)
		if err != nil {
			return err
		}
		if err := a.Term.Exec(cmd); err != nil {
			return fmt.Errorf("create %s: %w", form.Name, err)
		}
	} else if err := a.Backend.Create(ctx, form.Name, tmpl); err != nil {
		return err
	}
	a.stream(ctx, form.Name)
	return nil
}
