// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"context"

	"github.com/go-viper/mapstructure/v2"
)

// State of a running Dialog.
type State int

const (
	Running State = iota
	ConfirmedExit
	CancelledExit
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ConfirmedExit:
		return "confirmed"
	case CancelledExit:
		return "cancelled"
	}
	return "unknown"
}

// KeySource delivers one key per call and blocks until one is available.
type KeySource interface {
	ReadKey(ctx context.Context) (Key, error)
}

// Display is a Canvas that can push what was painted to the terminal.
type Display interface {
	Canvas
	Flush()
}

// Hotkey handles a key before it reaches the focused widget.
type Hotkey func(d *Dialog)

// Result is what a Dialog hands back: whether it was confirmed and the
// final value of every widget by ID.
type Result struct {
	Confirmed bool
	Values    map[string]any
}

// Decode copies Values into the struct out points to, matching widget IDs
// against mapstructure tags.
func (r Result) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.Values)
}

func (r Result) String(id string) string {
	s, _ := r.Values[id].(string)
	return s
}

func (r Result) Int(id string) int {
	i, _ := r.Values[id].(int)
	return i
}

// Pressed reports whether the button with the given ID was confirmed.
func (r Result) Pressed(id string) bool {
	b, _ := r.Values[id].(bool)
	return r.Confirmed && b
}

type caretPlacer interface {
	PlaceCaret(c Canvas)
}

// Dialog runs an ordered set of widgets until a button is confirmed or the
// user cancels. Widget order is both tab order and paint order.
type Dialog struct {
	display Display
	widgets []Widget
	order   []int
	focus   int
	hotkeys map[Key]Hotkey
	state   State
	prepare func(d *Dialog)
}

func NewDialog(display Display, widgets ...Widget) *Dialog {
	d := &Dialog{
		display: display,
		widgets: widgets,
		hotkeys: make(map[Key]Hotkey),
	}
	for i, w := range widgets {
		if w.Focusable() {
			d.order = append(d.order, i)
		}
	}
	return d
}

// Hotkey registers h for k. Hotkeys are consulted after Cancel, Enter and
// Tab and before the focused widget.
func (d *Dialog) Hotkey(k Key, h Hotkey) *Dialog {
	d.hotkeys[k] = h
	return d
}

// BeforeDraw sets fn to run at the start of every Draw. It must not block.
func (d *Dialog) BeforeDraw(fn func(d *Dialog)) *Dialog {
	d.prepare = fn
	return d
}

func (d *Dialog) State() State      { return d.state }
func (d *Dialog) Widgets() []Widget { return d.widgets }

// Focused returns the widget holding the focus, nil if none can.
func (d *Dialog) Focused() Widget {
	if len(d.order) == 0 {
		return nil
	}
	return d.widgets[d.order[d.focus]]
}

// Widget returns the widget with the given ID.
func (d *Dialog) Widget(id string) Widget {
	for _, w := range d.widgets {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

// Cancel ends the dialog as if the user pressed Cancel.
func (d *Dialog) Cancel() { d.state = CancelledExit }

// Invalidate schedules a full repaint of every widget.
func (d *Dialog) Invalidate() {
	for _, w := range d.widgets {
		w.Invalidate()
	}
}

// Values collects the current value of every widget.
func (d *Dialog) Values() map[string]any {
	values := make(map[string]any, len(d.widgets))
	for _, w := range d.widgets {
		values[w.ID()] = w.Value()
	}
	return values
}

// Start puts the dialog into Running with the focus on the first focusable
// widget and paints it.
func (d *Dialog) Start() {
	d.state = Running
	d.focus = 0
	for i, w := range d.widgets {
		w.Focus(len(d.order) > 0 && i == d.order[0])
	}
	d.Draw()
}

// Run paints the dialog and processes keys until it exits. A cancelled
// dialog reports the values the widgets had when Run was called.
func (d *Dialog) Run(ctx context.Context, keys KeySource) (Result, error) {
	initial := d.Values()
	d.Start()
	for d.state == Running {
		k, err := keys.ReadKey(ctx)
		if err != nil {
			return Result{Values: initial}, err
		}
		d.Step(k)
		d.Draw()
	}
	if d.state == CancelledExit {
		return Result{Values: initial}, nil
	}
	return Result{Confirmed: true, Values: d.Values()}, nil
}

// Step applies one key and returns the resulting state.
func (d *Dialog) Step(k Key) State {
	if d.state != Running {
		return d.state
	}
	focused := d.Focused()
	_, onButton := focused.(*Button)

	switch {
	case k.Code == KeyCancel:
		d.state = CancelledExit
		return d.state
	case k.Code == KeyEnter && !onButton:
		for _, w := range d.widgets {
			if b, ok := w.(*Button); ok {
				b.Press()
			}
		}
		d.state = ConfirmedExit
		return d.state
	case k.Code == KeyTab:
		d.advance()
		return d.state
	case k.Code == KeyRedraw:
		d.Invalidate()
		return d.state
	}

	if h, ok := d.hotkeys[k]; ok {
		h(d)
		return d.state
	}
	if focused == nil {
		return d.state
	}

	signal, emitted := focused.HandleKey(k)
	for _, w := range d.widgets {
		if b, ok := w.(*Button); ok && b.IsConfirmed() {
			d.state = ConfirmedExit
		}
	}
	if emitted && focused.Master() {
		d.Broadcast(focused, signal)
	}
	return d.state
}

// Broadcast hands signal to the callback of every widget except source.
func (d *Dialog) Broadcast(source Widget, signal string) {
	for _, w := range d.widgets {
		if w == source {
			continue
		}
		if cb := w.Callback(); cb != nil {
			cb(w, signal)
		}
	}
}

func (d *Dialog) advance() {
	if len(d.order) == 0 {
		return
	}
	d.Focused().Focus(false)
	d.focus = (d.focus + 1) % len(d.order)
	d.Focused().Focus(true)
}

// Draw paints whatever changed, places the caret and flushes.
func (d *Dialog) Draw() {
	if d.prepare != nil {
		d.prepare(d)
	}
	if d.display == nil {
		return
	}
	for _, w := range d.widgets {
		w.Render(d.display)
	}
	if cp, ok := d.Focused().(caretPlacer); ok {
		cp.PlaceCaret(d.display)
	} else {
		d.display.HideCaret()
	}
	d.display.Flush()
}
