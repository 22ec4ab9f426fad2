// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Surface is a rectangular region of the screen with an optional border
// and a title drawn into the top border.
type Surface struct {
	Y, X          int
	Height, Width int
	Title         string
	Border        bool
	Shadow        bool
}

// NewSurface returns a bordered surface.
func NewSurface(y, x, height, width int, title string) *Surface {
	return &Surface{Y: y, X: x, Height: height, Width: width, Title: title, Border: true}
}

// mustFit panics when s cannot hold a border and the given number of
// content rows.
func (s *Surface) mustFit(kind string, rows int) {
	if s == nil {
		panic(fmt.Sprintf("widget: %s without surface", kind))
	}
	if s.Border {
		rows += 2
	}
	if s.Height < rows || s.Width < 3 {
		panic(fmt.Sprintf("widget: %s needs at least %dx3 cells, got %dx%d", kind, rows, s.Height, s.Width))
	}
}

// Inner returns the content area inside the border.
func (s *Surface) Inner() (y, x, height, width int) {
	if !s.Border {
		return s.Y, s.X, s.Height, s.Width
	}
	return s.Y + 1, s.X + 1, s.Height - 2, s.Width - 2
}

// Contains reports whether the cell at y, x lies on the surface.
func (s *Surface) Contains(y, x int) bool {
	return y >= s.Y && y < s.Y+s.Height && x >= s.X && x < s.X+s.Width
}

// DrawFrame paints the shadow, the background, the border and the title.
func (s *Surface) DrawFrame(c Canvas, st Styles, focused bool) {
	if s.Shadow {
		c.Fill(s.Y+1, s.X+s.Width, s.Height, 1, st.Shadow)
		c.Print(s.Y+s.Height, s.X+1, strings.Repeat(" ", s.Width), st.Shadow)
	}
	c.Fill(s.Y, s.X, s.Height, s.Width, st.Content)
	if !s.Border {
		return
	}
	b := lipgloss.NormalBorder()
	horiz := strings.Repeat(b.Top, s.Width-2)
	c.Print(s.Y, s.X, b.TopLeft+horiz+b.TopRight, st.Border)
	for row := 1; row < s.Height-1; row++ {
		c.Print(s.Y+row, s.X, b.Left, st.Border)
		c.Print(s.Y+row, s.X+s.Width-1, b.Right, st.Border)
	}
	c.Print(s.Y+s.Height-1, s.X, b.BottomLeft+strings.Repeat(b.Bottom, s.Width-2)+b.BottomRight, st.Border)
	s.DrawTitle(c, st, focused)
}

// DrawTitle repaints only the title, which changes style with focus.
func (s *Surface) DrawTitle(c Canvas, st Styles, focused bool) {
	if !s.Border || s.Title == "" {
		return
	}
	style := st.Title
	if focused {
		style = st.TitleFocused
	}
	title := ansi.Truncate(" "+s.Title+" ", s.Width-4, "")
	c.Print(s.Y, s.X+2, title, style)
}

// DrawIndicator writes text right-aligned into the top border.
func (s *Surface) DrawIndicator(c Canvas, st Styles, text string) {
	if !s.Border {
		return
	}
	text = " " + text + " "
	x := s.X + s.Width - 2 - ansi.StringWidth(text)
	if x <= s.X {
		return
	}
	c.Print(s.Y, x, text, st.Title)
}
