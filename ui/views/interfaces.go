// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"errors"
	"strconv"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/ui/widget"
	"github.com/toeirei/lxcui/util/slicest"
)

var (
	networkTypes = []string{"veth", "vlan", "macvlan", "phys"}
	networkFlags = []string{"down", "up"}
)

// ifaceForm is what the interfaces editor hands back. The field order of
// values matches entity.NetworkProps.
type ifaceForm struct {
	Index  string `mapstructure:"iface"`
	Link   string `mapstructure:"host"`
	Type   string `mapstructure:"type"`
	Flags  string `mapstructure:"status"`
	Name   string `mapstructure:"name"`
	HWAddr string `mapstructure:"hwaddr"`
	IPv4   string `mapstructure:"ipv4"`
}

func (f ifaceForm) values() []string {
	return []string{f.Type, f.Link, f.Flags, f.Name, f.HWAddr, f.IPv4}
}

// interfaceIndices lists the interfaces of name as "0", "1", ...
func (a *App) interfaceIndices(ctx context.Context, name string) ([]string, error) {
	types, err := a.Backend.GetConfig(ctx, name, entity.KeyNetwork)
	if err != nil {
		return nil, err
	}
	return slicest.MapI(types, func(i int, _ string) string { return strconv.Itoa(i) }), nil
}

// editInterfaces edits one network interface of e. INS adds an interface,
// DEL removes the one under the cursor of the interface list.
func (a *App) editInterfaces(ctx context.Context, e entity.Summary) error {
	indices, err := a.interfaceIndices(ctx, e.Name)
	if err != nil {
		return err
	}
	hostIfaces, err := a.Host.NetworkInterfaces()
	if err != nil {
		logging.Warnf("host interfaces: %v", err)
	}

	w, h := a.Term.Size()
	cw := max(min(25, w/4), 3)
	b := a.place(4*cw, 25)
	lh := max(min(h-b.y-5*fieldHeight, 10), 3)
	column := func(i int, title string) *widget.Surface {
		return widget.NewSurface(b.y, b.x+i*cw, lh, cw, title)
	}

	ifaces := widget.NewRadioList("iface", column(0, i18n.T("iface.lxc")), indices, 0)
	ifaces.SetMaster(true)
	host := widget.NewRadioList("host", column(1, i18n.T("iface.host")), hostIfaces, 0)
	types := widget.NewRadioList("type", column(2, i18n.T("iface.type")), networkTypes, 0)
	status := widget.NewRadioList("status", column(3, i18n.T("iface.status")), networkFlags, 0)
	name := widget.NewTextInput("name", b.field(lh, i18n.T("iface.name")), widget.FreeForm, "")
	mac := widget.NewTextInput("hwaddr", b.field(lh+fieldHeight, i18n.T("iface.mac")), widget.FreeForm, "")
	ip := widget.NewTextInput("ipv4", b.field(lh+2*fieldHeight, i18n.T("iface.ip")), widget.FreeForm, "")
	ok, cancel := b.okCancel(lh + 3*fieldHeight)
	help := widget.NewStatusText("help", b.field(lh+4*fieldHeight, i18n.T("hotkeys.title")), i18n.T("iface.hotkeys"))

	var loadErr error
	fail := func(err error) { loadErr = errors.Join(loadErr, err) }
	// Each dependent re-reads its own property when an interface is
	// confirmed in the master list.
	bind := func(prop string, set func(string)) widget.Callback {
		return func(_ widget.Widget, index string) {
			i, err := strconv.Atoi(index)
			if err != nil {
				return
			}
			v, err := a.Backend.GetConfig(ctx, e.Name, entity.NetworkKey(i, prop))
			if err != nil {
				fail(err)
				return
			}
			set(entity.First(v))
		}
	}
	dependents := []struct {
		w  interface{ OnSignal(widget.Callback) }
		cb widget.Callback
	}{
		{host, bind("link", host.ConfirmValue)},
		{types, bind("type", types.ConfirmValue)},
		{status, bind("flags", status.ConfirmValue)},
		{name, bind("name", name.SetValue)},
		{mac, bind("hwaddr", mac.SetValue)},
		{ip, bind("ipv4", ip.SetValue)},
	}
	for _, dep := range dependents {
		dep.w.OnSignal(dep.cb)
		if len(indices) > 0 {
			dep.cb(nil, indices[0])
		}
	}

	// reload re-reads the interface list, confirms the interface at want
	// (clamped) and syncs the dependents to it. Without interfaces the
	// dependents are cleared.
	reload := func(d *widget.Dialog, want int) {
		idx, err := a.interfaceIndices(ctx, e.Name)
		if err != nil {
			fail(err)
			return
		}
		ifaces.SetItems(idx, want)
		if len(idx) == 0 {
			ifaces.Confirm(-1)
			for _, rl := range []*widget.RadioList{host, types, status} {
				rl.Confirm(-1)
			}
			for _, ti := range []*widget.TextInput{name, mac, ip} {
				ti.SetValue("")
			}
			return
		}
		want = min(max(want, 0), len(idx)-1)
		ifaces.Confirm(want)
		d.Broadcast(ifaces, idx[want])
	}
	d := a.dialog(ifaces, host, types, status, name, mac, ip, ok, cancel, help)
	d.Hotkey(widget.K(widget.KeyInsertRow), func(d *widget.Dialog) {
		n := ifaces.Len()
		if err := a.Backend.SetConfig(ctx, e.Name, entity.NetworkKey(n, "type"), networkTypes[0]); err != nil {
			fail(err)
			return
		}
		if err := a.Backend.SaveConfig(ctx, e.Name); err != nil {
			fail(err)
			return
		}
		reload(d, n)
	})
	d.Hotkey(widget.K(widget.KeyDeleteRow), func(d *widget.Dialog) {
		i := ifaces.Index()
		if i < 0 {
			return
		}
		if err := a.Backend.ClearConfig(ctx, e.Name, entity.NetworkKey(i, "")); err != nil {
			fail(err)
			return
		}
		if err := a.Backend.SaveConfig(ctx, e.Name); err != nil {
			fail(err)
			return
		}
		reload(d, i)
	})

	res, err := d.Run(ctx, a.Term)
	if err != nil {
		return err
	}
	if loadErr != nil {
		return loadErr
	}
	if !res.Pressed("ok") {
		return nil
	}
	var form ifaceForm
	if err := res.Decode(&form); err != nil {
		return err
	}
	return a.applyInterface(ctx, e.Name, form)
}

// applyInterface writes form back. A changed type or a down interface is
// rewritten as a new interface at the end; otherwise only changed
// properties are written. "down" itself is never written.
func (a *App) applyInterface(ctx context.Context, name string, form ifaceForm) error {
	index, err := strconv.Atoi(form.Index)
	if err != nil {
		return nil
	}
	current, err := a.Backend.GetConfig(ctx, name, entity.NetworkKey(index, "type"))
	if err != nil {
		return err
	}
	rewrite := entity.First(current) != form.Type || form.Flags == "down"
	if rewrite {
		if err := a.Backend.ClearConfig(ctx, name, entity.NetworkKey(index, "")); err != nil {
			return err
		}
		types, err := a.Backend.GetConfig(ctx, name, entity.KeyNetwork)
		if err != nil {
			return err
		}
		index = len(types)
	}

	values := form.values()
	for i, prop := range entity.NetworkProps {
		key := entity.NetworkKey(index, prop)
		if !rewrite {
			old, err := a.Backend.GetConfig(ctx, name, key)
			if err != nil {
				return err
			}
			if entity.First(old) == values[i] {
				continue
			}
		}
		if values[i] == "down" {
			continue
		}
		if err := a.writeConfig(ctx, name, key, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeConfig replaces key with value and saves. Empty values are skipped.
func (a *App) writeConfig(ctx context.Context, name, key, value string) error {
	if value == "" {
		return nil
	}
	logging.Infof("%s: %s = %s", name, key, value)
	if err := a.Backend.ClearConfig(ctx, name, key); err != nil {
		return err
	}
	if err := a.Backend.SetConfig(ctx, name, key, value); err != nil {
		return err
	}
	return a.Backend.SaveConfig(ctx, name)
}
