// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import "slices"

const (
	markerOn  = "[*] "
	markerOff = "[ ] "
)

// RadioList is a single-choice list. The confirmed choice is separate from
// the cursor and only changes on Space.
type RadioList struct {
	*SelectionList
	confirmed int
}

var _ Widget = (*RadioList)(nil)

// NewRadioList starts with the cursor on the confirmed choice. Pass -1 when
// nothing is confirmed yet.
func NewRadioList(id string, s *Surface, items []string, confirmed int) *RadioList {
	if confirmed >= len(items) {
		confirmed = -1
	}
	r := &RadioList{
		SelectionList: NewSelectionList(id, s, items, max(confirmed, 0)),
		confirmed:     confirmed,
	}
	r.decorate = r.marker
	return r
}

func (r *RadioList) marker(i int) string {
	if i == r.confirmed {
		return markerOn
	}
	return markerOff
}

// Confirmed returns the index of the confirmed choice or -1.
func (r *RadioList) Confirmed() int { return r.confirmed }

// Choice returns the confirmed item.
func (r *RadioList) Choice() (string, bool) {
	if r.confirmed < 0 || r.confirmed >= len(r.items) {
		return "", false
	}
	return r.items[r.confirmed], true
}

// Value is the confirmed item or "" when nothing is confirmed.
func (r *RadioList) Value() any {
	v, _ := r.Choice()
	return v
}

// Confirm makes i the confirmed choice and moves the cursor onto it.
func (r *RadioList) Confirm(i int) {
	if i < -1 || i >= len(r.items) {
		return
	}
	if i == r.confirmed {
		return
	}
	r.markRow(r.confirmed)
	r.confirmed = i
	if i >= 0 {
		r.moveTo(i)
		r.markRow(i)
	}
}

// ConfirmValue confirms the first item equal to v. Unknown values clear
// the choice.
func (r *RadioList) ConfirmValue(v string) {
	r.Confirm(slices.Index(r.items, v))
}

// SetItems swaps the backing sequence and clamps the confirmed choice.
func (r *RadioList) SetItems(items []string, index int) {
	if r.confirmed >= len(items) {
		r.confirmed = len(items) - 1
	}
	r.SelectionList.SetItems(items, index)
}

func (r *RadioList) HandleKey(k Key) (string, bool) {
	if k.Code != KeySpace {
		r.navigate(k)
		return "", false
	}
	if len(r.items) == 0 {
		return "", false
	}
	r.markRow(r.confirmed)
	r.confirmed = r.index
	r.markRow(r.index)
	if !r.master {
		return "", false
	}
	return r.items[r.index], true
}
