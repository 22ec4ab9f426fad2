// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package entity

import (
	"errors"
	"fmt"
)

type State string

const (
	Stopped  State = "STOPPED"
	Starting State = "STARTING"
	Running  State = "RUNNING"
	Stopping State = "STOPPING"
	Aborting State = "ABORTING"
	Freezing State = "FREEZING"
	Frozen   State = "FROZEN"
	Thawed   State = "THAWED"
)

// Flag is the one-letter state shown in the list.
func (s State) Flag() string {
	if s == "" {
		return "?"
	}
	return string(s[0])
}

var (
	ErrNotFound     = errors.New("entity not found")
	ErrExists       = errors.New("entity already exists")
	ErrInvalidState = errors.New("invalid state for operation")
	ErrUnsupported  = errors.New("operation not supported")
)

// Summary is one row of the entity list.
type Summary struct {
	Name    string `json:"name"`
	State   State  `json:"state"`
	Size    string `json:"size,omitempty"`
	Release string `json:"release,omitempty"`
}

func (s Summary) Running() bool { return s.State == Running }
func (s Summary) Frozen() bool  { return s.State == Frozen }
func (s Summary) Stopped() bool { return s.State == Stopped }

type Snapshot struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
	Comment   string `json:"comment,omitempty"`
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%-8s %s", s.Name, s.Timestamp)
}

// Template is an image found in the local download cache. The zero value
// means the backend default.
type Template struct {
	Dist    string `json:"dist"`
	Release string `json:"release"`
	Arch    string `json:"arch"`
}

func (t Template) IsDefault() bool { return t == Template{} }

func (t Template) String() string {
	if t.IsDefault() {
		return "Default"
	}
	return t.Dist + "/" + t.Release + "/" + t.Arch
}
