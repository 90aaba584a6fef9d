// MacNCheese
// Copyright (c) 2026 The MacNCheese Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of MacNCheese.
//
// MacNCheese is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MacNCheese is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MacNCheese.  If not, see <http://www.gnu.org/licenses/>.

package command

import (
	"context"
	"sync"
)

// MockExecutor records invocations instead of running anything. Stream
// feeds FakeOutput lines to the sink and fails commands listed in
// FailOn with the given exit code.
type MockExecutor struct {
	FailOn     map[string]int
	FakeOutput []string
	Commands   []Command
	mu         sync.Mutex
}

// Run records the command and reports configured failures.
func (m *MockExecutor) Run(_ context.Context, name string, args ...string) error {
	return m.record(Command{Name: name, Args: args}, nil)
}

// Output records the command and returns no output.
func (m *MockExecutor) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	return nil, m.record(Command{Name: name, Args: args}, nil)
}

// Start records the command and reports configured failures.
func (m *MockExecutor) Start(_ context.Context, name string, args ...string) error {
	return m.record(Command{Name: name, Args: args}, nil)
}

// Stream records the command, emits FakeOutput and reports configured failures.
func (m *MockExecutor) Stream(_ context.Context, opts StreamOptions, cmd Command) error {
	return m.record(cmd, opts.Sink)
}

// Ran returns a copy of every command seen so far.
func (m *MockExecutor) Ran() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Command, len(m.Commands))
	copy(out, m.Commands)
	return out
}

func (m *MockExecutor) record(cmd Command, sink func(string)) error {
	m.mu.Lock()
	m.Commands = append(m.Commands, cmd)
	m.mu.Unlock()

	if sink != nil {
		for _, line := range m.FakeOutput {
			sink(line)
		}
	}

	if code, ok := m.FailOn[cmd.Name]; ok {
		return &ExitError{Command: cmd, Code: code}
	}
	return nil
}
