// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package entity

import (
	"context"
	"os/exec"
	"time"
)

// MockBackend forwards to Overwrites where set and to BaseBackend
// otherwise. Tests use it to inject failures into a Fake.
type MockBackend struct {
	BaseBackend Backend
	Overwrites  MockBackendOverwrites
}

type MockBackendOverwrites struct {
	List            func(ctx context.Context) ([]Summary, error)
	RootPath        func(name string) string
	GetConfig       func(ctx context.Context, name, key string) ([]string, error)
	SetConfig       func(ctx context.Context, name, key, value string) error
	ClearConfig     func(ctx context.Context, name, key string) error
	SaveConfig      func(ctx context.Context, name string) error
	Create          func(ctx context.Context, name string, tmpl Template) error
	Start           func(ctx context.Context, name string) error
	Stop            func(ctx context.Context, name string) error
	Freeze          func(ctx context.Context, name string) error
	Unfreeze        func(ctx context.Context, name string) error
	Destroy         func(ctx context.Context, name string) error
	Clone           func(ctx context.Context, name, newName string) error
	Rename          func(ctx context.Context, name, newName string) error
	WaitForState    func(ctx context.Context, name string, state State, timeout time.Duration) (bool, error)
	Attach          func(name string, args ...string) *exec.Cmd
	ListSnapshots   func(ctx context.Context, name string) ([]Snapshot, error)
	TakeSnapshot    func(ctx context.Context, name string) error
	RestoreSnapshot func(ctx context.Context, name, id string) error
	DestroySnapshot func(ctx context.Context, name, id string) error
}

var _ Backend = (*MockBackend)(nil)

// backend := NewMockBackend(NewFake(""), MockBackendOverwrites{ /* overwrite Backend methods here... */ })
func NewMockBackend(base Backend, overwrites MockBackendOverwrites) *MockBackend {
	return &MockBackend{
		BaseBackend: base,
		Overwrites:  overwrites,
	}
}

// --- Backend implementation ---

func (m *MockBackend) List(ctx context.Context) ([]Summary, error) {
	if m.Overwrites.List != nil {
		return m.Overwrites.List(ctx)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.List(ctx)
	}
	panic("MockBackend.List not implemented")
}

func (m *MockBackend) RootPath(name string) string {
	if m.Overwrites.RootPath != nil {
		return m.Overwrites.RootPath(name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.RootPath(name)
	}
	panic("MockBackend.RootPath not implemented")
}

func (m *MockBackend) GetConfig(ctx context.Context, name, key string) ([]string, error) {
	if m.Overwrites.GetConfig != nil {
		return m.Overwrites.GetConfig(ctx, name, key)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.GetConfig(ctx, name, key)
	}
	panic("MockBackend.GetConfig not implemented")
}

func (m *MockBackend) SetConfig(ctx context.Context, name, key, value string) error {
	if m.Overwrites.SetConfig != nil {
		return m.Overwrites.SetConfig(ctx, name, key, value)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.SetConfig(ctx, name, key, value)
	}
	panic("MockBackend.SetConfig not implemented")
}

func (m *MockBackend) ClearConfig(ctx context.Context, name, key string) error {
	if m.Overwrites.ClearConfig != nil {
		return m.Overwrites.ClearConfig(ctx, name, key)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.ClearConfig(ctx, name, key)
	}
	panic("MockBackend.ClearConfig not implemented")
}

func (m *MockBackend) SaveConfig(ctx context.Context, name string) error {
	if m.Overwrites.SaveConfig != nil {
		return m.Overwrites.SaveConfig(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.SaveConfig(ctx, name)
	}
	panic("MockBackend.SaveConfig not implemented")
}

func (m *MockBackend) Create(ctx context.Context, name string, tmpl Template) error {
	if m.Overwrites.Create != nil {
		return m.Overwrites.Create(ctx, name, tmpl)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Create(ctx, name, tmpl)
	}
	panic("MockBackend.Create not implemented")
}

func (m *MockBackend) Start(ctx context.Context, name string) error {
	if m.Overwrites.Start != nil {
		return m.Overwrites.Start(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Start(ctx, name)
	}
	panic("MockBackend.Start not implemented")
}

func (m *MockBackend) Stop(ctx context.Context, name string) error {
	if m.Overwrites.Stop != nil {
		return m.Overwrites.Stop(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Stop(ctx, name)
	}
	panic("MockBackend.Stop not implemented")
}

func (m *MockBackend) Freeze(ctx context.Context, name string) error {
	if m.Overwrites.Freeze != nil {
		return m.Overwrites.Freeze(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Freeze(ctx, name)
	}
	panic("MockBackend.Freeze not implemented")
}

func (m *MockBackend) Unfreeze(ctx context.Context, name string) error {
	if m.Overwrites.Unfreeze != nil {
		return m.Overwrites.Unfreeze(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Unfreeze(ctx, name)
	}
	panic("MockBackend.Unfreeze not implemented")
}

func (m *MockBackend) Destroy(ctx context.Context, name string) error {
	if m.Overwrites.Destroy != nil {
		return m.Overwrites.Destroy(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Destroy(ctx, name)
	}
	panic("MockBackend.Destroy not implemented")
}

func (m *MockBackend) Clone(ctx context.Context, name, newName string) error {
	if m.Overwrites.Clone != nil {
		return m.Overwrites.Clone(ctx, name, newName)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Clone(ctx, name, newName)
	}
	panic("MockBackend.Clone not implemented")
}

func (m *MockBackend) Rename(ctx context.Context, name, newName string) error {
	if m.Overwrites.Rename != nil {
		return m.Overwrites.Rename(ctx, name, newName)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Rename(ctx, name, newName)
	}
	panic("MockBackend.Rename not implemented")
}

func (m *MockBackend) WaitForState(ctx context.Context, name string, state State, timeout time.Duration) (bool, error) {
	if m.Overwrites.WaitForState != nil {
		return m.Overwrites.WaitForState(ctx, name, state, timeout)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.WaitForState(ctx, name, state, timeout)
	}
	panic("MockBackend.WaitForState not implemented")
}

func (m *MockBackend) Attach(name string, args ...string) *exec.Cmd {
	if m.Overwrites.Attach != nil {
		return m.Overwrites.Attach(name, args...)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.Attach(name, args...)
	}
	panic("MockBackend.Attach not implemented")
}

func (m *MockBackend) ListSnapshots(ctx context.Context, name string) ([]Snapshot, error) {
	if m.Overwrites.ListSnapshots != nil {
		return m.Overwrites.ListSnapshots(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.ListSnapshots(ctx, name)
	}
	panic("MockBackend.ListSnapshots not implemented")
}

func (m *MockBackend) TakeSnapshot(ctx context.Context, name string) error {
	if m.Overwrites.TakeSnapshot != nil {
		return m.Overwrites.TakeSnapshot(ctx, name)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.TakeSnapshot(ctx, name)
	}
	panic("MockBackend.TakeSnapshot not implemented")
}

func (m *MockBackend) RestoreSnapshot(ctx context.Context, name, id string) error {
	if m.Overwrites.RestoreSnapshot != nil {
		return m.Overwrites.RestoreSnapshot(ctx, name, id)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.RestoreSnapshot(ctx, name, id)
	}
	panic("MockBackend.RestoreSnapshot not implemented")
}

func (m *MockBackend) DestroySnapshot(ctx context.Context, name, id string) error {
	if m.Overwrites.DestroySnapshot != nil {
		return m.Overwrites.DestroySnapshot(ctx, name, id)
	} else if m.BaseBackend != nil {
		return m.BaseBackend.DestroySnapshot(ctx, name, id)
	}
	panic("MockBackend.DestroySnapshot not implemented")
}
