// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import "github.com/charmbracelet/lipgloss"

// Styles is the style pair every widget carries plus the variants used for
// focus and selection.
type Styles struct {
	Title        lipgloss.Style
	TitleFocused lipgloss.Style
	Content      lipgloss.Style
	Highlight    lipgloss.Style
	Border       lipgloss.Style
	Shadow       lipgloss.Style
}

var (
	colorFrame  = lipgloss.AdaptiveColor{Light: "#3C3C3C", Dark: "#BDBDBD"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#00429D", Dark: "#7AA2F7"}
	colorShadow = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#1A1A1A"}
)

// DefaultStyles returns the styles a widget gets unless the caller sets
// its own.
func DefaultStyles() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Foreground(colorFrame),
		TitleFocused: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Content:      lipgloss.NewStyle(),
		Highlight:    lipgloss.NewStyle().Reverse(true),
		Border:       lipgloss.NewStyle().Foreground(colorFrame),
		Shadow:       lipgloss.NewStyle().Background(colorShadow),
	}
}
