// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package views builds the lxcui screens out of widget dialogs: the
// container list and the editors reachable from it.
package views

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/internal/sizer"
	"github.com/toeirei/lxcui/ui/widget"
)

// Terminal is where the dialogs run.
type Terminal interface {
	widget.KeySource
	widget.Display
	Size() (width, height int)
	Clear()
	// Exec hands the terminal to cmd until it exits.
	Exec(cmd *exec.Cmd) error
	// Wake makes the running dialog redraw without a key press.
	Wake()
}

// creator is implemented by backends that can create a container in the
// foreground of a terminal.
type creator interface {
	CreateCommand(name string, tmpl entity.Template) (*exec.Cmd, error)
}

// App is the interactive container manager.
type App struct {
	Backend entity.Backend
	Host    entity.Host
	Term    Terminal
	Sizer   *sizer.Worker
	// WaitTimeout bounds every wait for a state change.
	WaitTimeout time.Duration
	// Copy puts text on the clipboard.
	Copy   func(text string) error
	Styles widget.Styles

	entities []entity.Summary
	sizes    map[string]string
	pending  map[string]<-chan sizer.Result
	cursor   int
	list     *widget.MenuList
	action   func(ctx context.Context) error
}

// New wires an App. The size worker wakes the terminal whenever a
// measurement finishes.
func New(backend entity.Backend, host entity.Host, term Terminal, worker *sizer.Worker) *App {
	a := &App{
		Backend:     backend,
		Host:        host,
		Term:        term,
		Sizer:       worker,
		WaitTimeout: 3 * time.Second,
		Copy:        clipboard.WriteAll,
		Styles:      widget.DefaultStyles(),
		sizes:       make(map[string]string),
		pending:     make(map[string]<-chan sizer.Result),
	}
	worker.OnResult(func(sizer.Result) { term.Wake() })
	return a
}

// Run shows the container list until the user quits. A closed terminal
// ends the loop without error.
func (a *App) Run(ctx context.Context) error {
	if err := a.refresh(ctx); err != nil {
		return err
	}
	for {
		quit, err := a.runList(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil || quit {
			return err
		}
		if a.action == nil {
			continue
		}
		act := a.action
		a.action = nil
		if err := act(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			logging.Errorf("%v", err)
			if err := a.ShowError(ctx, err); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
		if err := a.refresh(ctx); err != nil {
			return err
		}
	}
}

// refresh re-enumerates the containers and starts a measurement for every
// container without a known size.
func (a *App) refresh(ctx context.Context) error {
	list, err := a.Backend.List(ctx)
	if err != nil {
		return err
	}
	a.entities = list
	a.cursor = max(0, min(a.cursor, len(list)-1))
	for _, e := range list {
		if _, ok := a.sizes[e.Name]; ok {
			continue
		}
		if _, ok := a.pending[e.Name]; ok {
			continue
		}
		a.pending[e.Name] = a.Sizer.Start(e.Name, a.Backend.RootPath(e.Name), nil)
	}
	return nil
}

// collectSizes takes whatever measurements have finished. It reports
// whether a size changed.
func (a *App) collectSizes() bool {
	changed := false
	for name, ch := range a.pending {
		r, ok := sizer.Poll(ch)
		if !ok {
			continue
		}
		delete(a.pending, name)
		if r.Err != nil {
			logging.Warnf("measure %s: %v", name, r.Err)
		}
		a.sizes[name] = r.Size()
		changed = true
	}
	return changed
}

// measure recomputes the size of name and waits for it.
func (a *App) measure(ctx context.Context, name string) {
	delete(a.pending, name)
	r := a.Sizer.FireAndWait(ctx, name, a.Backend.RootPath(name))
	a.sizes[name] = r.Size()
}

// selected returns the container under the cursor.
func (a *App) selected() (entity.Summary, bool) {
	if a.cursor < 0 || a.cursor >= len(a.entities) {
		return entity.Summary{}, false
	}
	return a.entities[a.cursor], true
}

// waitFor blocks until name reaches state or WaitTimeout passes.
func (a *App) waitFor(ctx context.Context, name string, state entity.State) error {
	ok, err := a.Backend.WaitForState(ctx, name, state, a.WaitTimeout)
	if err != nil {
		return err
	}
	if !ok {
		logging.Warnf("%s did not reach %s within %s", name, state, a.WaitTimeout)
	}
	return nil
}
