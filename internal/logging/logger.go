// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging holds the process-wide logger. The terminal belongs to the
// dialogs while the UI runs, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. It discards output until SetOutput or
// OpenFile is called.
var L = clog.NewWithOptions(io.Discard, clog.Options{ReportTimestamp: true})

// SetOutput points L at w, keeping its level.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// SetLevel accepts debug, info, warn and error.
func SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	L.SetLevel(lvl)
	return nil
}

// OpenFile appends log output to path. The returned closer restores the
// discarding logger.
func OpenFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetOutput(f)
	return closerFunc(func() error {
		SetOutput(io.Discard)
		return f.Close()
	}), nil
}

// DefaultFile is $XDG_STATE_HOME/lxcui/lxcui.log, or lxcui/lxcui.log in
// the user cache dir when XDG_STATE_HOME is unset.
func DefaultFile() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lxcui", "lxcui.log"), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lxcui", "lxcui.log"), nil
}

type closerFunc func() error

func (fn closerFunc) Close() error { return fn() }

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
