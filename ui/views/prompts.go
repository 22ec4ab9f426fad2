// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package views

import (
	"context"
	"strings"

	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/ui/widget"
)

// AskString asks for one line of text. ok is false when the user cancelled
// or left the line empty.
func (a *App) AskString(ctx context.Context, title string) (string, bool, error) {
	b := a.place(formWidth, 2*fieldHeight)
	input := widget.NewTextInput("value", b.field(0, title), widget.FreeForm, "")
	ok, cancel := b.okCancel(fieldHeight)

	res, err := a.dialog(input, ok, cancel).Run(ctx, a.Term)
	if err != nil || !res.Pressed("ok") {
		return "", false, err
	}
	value := strings.TrimSpace(res.String("value"))
	return value, value != "", nil
}

// Confirm shows message with Yes and No.
func (a *App) Confirm(ctx context.Context, message string) (bool, error) {
	b := a.place(formWidth, 0)
	height := textHeight(message, b.width)
	text := widget.NewStatusText("message", widget.NewSurface(b.y, b.x, height, b.width, i18n.T("confirm.title")), message)
	text.Surface().Shadow = true
	yes, no := b.buttons(height, "yes", i18n.T("button.yes"), "no", i18n.T("button.no"))

	res, err := a.dialog(text, yes, no).Run(ctx, a.Term)
	if err != nil {
		return false, err
	}
	return res.Pressed("yes"), nil
}

// ShowError shows err until the user acknowledges it.
func (a *App) ShowError(ctx context.Context, err error) error {
	b := a.place(formWidth, 0)
	message := err.Error()
	height := textHeight(message, b.width)
	text := widget.NewStatusText("message", widget.NewSurface(b.y, b.x, height, b.width, i18n.T("error.title")), message)
	text.Surface().Shadow = true
	ok := widget.NewButton("ok", widget.NewSurface(b.y+height, b.x, fieldHeight, b.width, ""), i18n.T("button.ok"))

	_, runErr := a.dialog(text, ok).Run(ctx, a.Term)
	return runErr
}

// textHeight is the height of a bordered StatusText showing message.
func textHeight(message string, width int) int {
	return max(len(widget.Wrap(message, width-2)), 1) + 2
}
