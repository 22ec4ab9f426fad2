// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  []string
	}{
		{"the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"short", 10, []string{"short"}},
		{"", 10, []string{}},
	}
	for _, c := range cases {
		got := Wrap(c.text, c.width)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Wrap(%q, %d) = %q, want %q", c.text, c.width, got, c.want)
		}
	}
}

func TestWrap_LinesFit(t *testing.T) {
	text := "a container named supercalifragilistic could not be stopped within three seconds"
	for _, line := range Wrap(text, 12) {
		if len(line) > 12 {
			t.Fatalf("line %q exceeds 12 cells", line)
		}
	}
}

func TestStatusText_NotFocusable(t *testing.T) {
	st := NewStatusText("msg", NewSurface(0, 0, 4, 14, ""), "the quick brown fox")
	if st.Focusable() {
		t.Fatalf("status text must not be focusable")
	}
	if len(st.Lines()) != 2 {
		t.Fatalf("lines = %q", st.Lines())
	}
}
