// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package terminal connects the synchronous dialogs to a bubbletea program.
//
// The program owns the terminal: it decodes keys, tracks the window size and
// shows the most recently flushed frame. Dialogs run on their own goroutine
// and block in ReadKey until the program forwards the next key.
package terminal

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/ui/widget"
)

// keyBuffer is how many decoded keys may wait for a dialog.
const keyBuffer = 64

// ErrClosed is returned by Exec once the program has ended.
var ErrClosed = errors.New("terminal closed")

type frameMsg string

type wakeMsg struct{}

type execMsg struct {
	cmd  *exec.Cmd
	done chan error
}

type execDoneMsg struct {
	err  error
	done chan error
}

// Terminal is a widget.Display and widget.KeySource on top of a bubbletea
// program.
type Terminal struct {
	*widget.Screen
	KeyMap KeyMap

	keys  chan widget.Key
	prog  *tea.Program
	opts  []tea.ProgramOption
	ready chan struct{}
	once  sync.Once
	done  chan struct{}
	err   error
}

var (
	_ widget.Display   = (*Terminal)(nil)
	_ widget.KeySource = (*Terminal)(nil)
)

// New returns a Terminal that is not started yet. opts are passed to
// tea.NewProgram after the alternate screen option.
func New(opts ...tea.ProgramOption) *Terminal {
	t := &Terminal{
		Screen: widget.NewScreen(80, 23),
		KeyMap: DefaultKeyMap,
		keys:   make(chan widget.Key, keyBuffer),
		opts:   opts,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}
	t.Screen.OnFlush(func(frame string) { t.send(frameMsg(frame)) })
	return t
}

// Start runs the program and waits for the first window size, at most
// timeout.
func (t *Terminal) Start(timeout time.Duration) {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.opts...)
	t.prog = tea.NewProgram(newModel(t), opts...)
	go func() {
		defer close(t.done)
		if _, err := t.prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			t.err = err
		}
	}()
	select {
	case <-t.ready:
	case <-t.done:
	case <-time.After(timeout):
		t.warnNoSize(timeout)
	}
}

// warnNoSize reports the screen size the dialogs fall back to.
func (t *Terminal) warnNoSize(timeout time.Duration) {
	w, h := t.Screen.Size()
	logging.Warnf("no window size after %s, using %dx%d", timeout, w, h)
}

// Close ends the program and restores the terminal.
func (t *Terminal) Close() error {
	if t.prog == nil {
		return nil
	}
	t.prog.Quit()
	<-t.done
	return t.err
}

// ReadKey blocks until a key arrives, ctx ends or the program exits.
func (t *Terminal) ReadKey(ctx context.Context) (widget.Key, error) {
	select {
	case k := <-t.keys:
		return k, nil
	case <-ctx.Done():
		return widget.Key{}, ctx.Err()
	case <-t.done:
		return widget.Key{}, io.EOF
	}
}

// Wake makes the running dialog redraw without a key press.
func (t *Terminal) Wake() {
	t.send(wakeMsg{})
}

// Exec hands the terminal to cmd until it exits.
func (t *Terminal) Exec(cmd *exec.Cmd) error {
	if t.prog == nil {
		return ErrClosed
	}
	done := make(chan error, 1)
	t.send(execMsg{cmd: cmd, done: done})
	select {
	case err := <-done:
		return err
	case <-t.done:
		return ErrClosed
	}
}

func (t *Terminal) send(msg tea.Msg) {
	if t.prog == nil {
		return
	}
	t.prog.Send(msg)
}

func (t *Terminal) push(k widget.Key) {
	select {
	case t.keys <- k:
	default:
		logging.Warnf("key buffer full, dropping %s", k)
	}
}

func (t *Terminal) markReady() {
	t.once.Do(func() { close(t.ready) })
}

type model struct {
	t      *Terminal
	frame  string
	footer footer
	height int
}

func newModel(t *Terminal) *model {
	return &model{t: t, footer: newFooter(t.KeyMap)}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.footer.setWidth(msg.Width)
		m.t.Screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.t.markReady()
		m.t.push(widget.K(widget.KeyRedraw))
	case tea.KeyMsg:
		if key.Matches(msg, m.t.KeyMap.Help) {
			m.footer.toggle()
			return m, nil
		}
		if k, ok := m.t.KeyMap.Translate(msg); ok {
			m.t.push(k)
		}
	case frameMsg:
		m.frame = string(msg)
	case wakeMsg:
		m.t.push(widget.K(widget.KeyNone))
	case execMsg:
		return m, tea.ExecProcess(msg.cmd, func(err error) tea.Msg {
			return execDoneMsg{err: err, done: msg.done}
		})
	case execDoneMsg:
		msg.done <- msg.err
	}
	return m, nil
}

func (m *model) View() string {
	return m.footer.render(m.frame, m.height)
}
