// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"fmt"
	"time"

	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/internal/sizer"
)

type action = func(ctx context.Context) error

// actions maps the list hotkeys to what they do.
func (a *App) actions() map[rune]action {
	return map[rune]action{
		'c': a.create,
		'd': a.onSelected(a.destroy),
		'e': a.onSelected(a.editLimits),
		'i': a.onSelected(a.editInterfaces),
		'p': a.onSelected(a.browseSnapshots),
		'r': a.onSelected(a.start),
		's': a.onSelected(a.stop),
		'f': a.onSelected(a.freeze),
		'u': a.onSelected(a.unfreeze),
		't': a.onSelected(a.console),
		'l': a.onSelected(a.clone),
		'n': a.onSelected(a.rename),
		'y': a.onSelected(a.yank),
	}
}

// onSelected runs fn on the container under the cursor, if any.
func (a *App) onSelected(fn func(ctx context.Context, e entity.Summary) error) action {
	return func(ctx context.Context) error {
		e, ok := a.selected()
		if !ok {
			return nil
		}
		return fn(ctx, e)
	}
}

// transition issues verb, shows the wait marker until the container
// reaches state and then measures it again.
func (a *App) transition(ctx context.Context, name string, verb func(context.Context, string) error, state entity.State) error {
	logging.Infof("%s: waiting for %s", name, state)
	if err := verb(ctx, name); err != nil {
		return err
	}
	a.markWait()
	if err := a.waitFor(ctx, name, state); err != nil {
		return err
	}
	a.measure(ctx, name)
	return nil
}

func (a *App) start(ctx context.Context, e entity.Summary) error {
	if !e.Stopped() {
		return nil
	}
	return a.transition(ctx, e.Name, a.Backend.Start, entity.Running)
}

func (a *App) stop(ctx context.Context, e entity.Summary) error {
	if !e.Running() && !e.Frozen() {
		return nil
	}
	return a.transition(ctx, e.Name, a.Backend.Stop, entity.Stopped)
}

func (a *App) freeze(ctx context.Context, e entity.Summary) error {
	if !e.Running() {
		return nil
	}
	return a.transition(ctx, e.Name, a.Backend.Freeze, entity.Frozen)
}

func (a *App) unfreeze(ctx context.Context, e entity.Summary) error {
	if !e.Frozen() {
		return nil
	}
	return a.transition(ctx, e.Name, a.Backend.Unfreeze, entity.Running)
}

// destroy asks first and stops a running container before destroying it.
func (a *App) destroy(ctx context.Context, e entity.Summary) error {
	ok, err := a.Confirm(ctx, i18n.T("confirm.destroy", e.Name))
	if err != nil || !ok {
		return err
	}
	logging.Infof("destroying %s", e.Name)
	if err := Destroy(ctx, a.Backend, e, a.WaitTimeout); err != nil {
		return err
	}
	delete(a.sizes, e.Name)
	delete(a.pending, e.Name)
	return nil
}

// Destroy stops e if needed, waits for it to stop and destroys it.
func Destroy(ctx context.Context, b entity.Backend, e entity.Summary, timeout time.Duration) error {
	if !e.Stopped() {
		if err := b.Stop(ctx, e.Name); err != nil {
			return err
		}
		if _, err := b.WaitForState(ctx, e.Name, entity.Stopped, timeout); err != nil {
			return err
		}
	}
	return b.Destroy(ctx, e.Name)
}

func (a *App) console(ctx context.Context, e entity.Summary) error {
	if !e.Running() {
		return nil
	}
	logging.Infof("attaching to %s", e.Name)
	if err := a.Term.Exec(a.Backend.Attach(e.Name)); err != nil {
		return fmt.Errorf("console of %s: %w", e.Name, err)
	}
	return nil
}

func (a *App) clone(ctx context.Context, e entity.Summary) error {
	name, ok, err := a.AskString(ctx, i18n.T("ask.clone"))
	if err != nil || !ok {
		return err
	}
	logging.Infof("cloning %s to %s", e.Name, name)
	if err := a.Backend.Clone(ctx, e.Name, name); err != nil {
		return err
	}
	a.stream(ctx, name)
	return nil
}

func (a *App) rename(ctx context.Context, e entity.Summary) error {
	name, ok, err := a.AskString(ctx, i18n.T("ask.rename"))
	if err != nil || !ok {
		return err
	}
	logging.Infof("renaming %s to %s", e.Name, name)
	if err := a.Backend.Rename(ctx, e.Name, name); err != nil {
		return err
	}
	if size, ok := a.sizes[e.Name]; ok {
		a.sizes[name] = size
		delete(a.sizes, e.Name)
	}
	return nil
}

func (a *App) yank(ctx context.Context, e entity.Summary) error {
	if err := a.Copy(e.Name); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	logging.Debugf("copied %s to the clipboard", e.Name)
	return nil
}

// stream measures name and shows the running total on the bottom row
// while it waits.
func (a *App) stream(ctx context.Context, name string) {
	w, h := a.Term.Size()
	label := i18n.T("status.measuring", name)
	delete(a.pending, name)
	r := a.Sizer.FireAndStream(ctx, name, a.Backend.RootPath(name), func(partial int64) {
		a.Term.Print(h-1, 0, fmt.Sprintf("%-*s", w, label+" "+sizer.Format(partial)), a.Styles.Highlight)
		a.Term.Flush()
	})
	a.sizes[name] = r.Size()
}
