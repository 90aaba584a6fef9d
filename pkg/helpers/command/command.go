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

// Package command provides an abstraction over exec.Command for testability.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command is a single external command invocation.
type Command struct {
	Name string
	Args []string
}

// String renders the command the way a shell prompt would show it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// StreamOptions configures how a streamed command runs.
type StreamOptions struct {
	// Sink receives each output line as it is produced. May be nil.
	Sink func(line string)
	// Dir is the working directory for the command. Empty means inherit.
	Dir string
	// Env is the full environment for the command. Nil means inherit.
	Env []string
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command Command
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed with exit code %d: %s", e.Code, e.Command)
}

// Executor provides an abstraction over exec.Command for testability.
// This allows commands to be mocked in tests without executing real
// system commands.
type Executor interface {
	// Run executes a command and waits for it to complete.
	// Returns an error if the command fails to start or exits non-zero.
	Run(ctx context.Context, name string, args ...string) error

	// Output runs a command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start starts a command without waiting for it to complete.
	Start(ctx context.Context, name string, args ...string) error

	// Stream runs a command to completion, feeding combined
	// stdout/stderr to opts.Sink one line at a time. A non-zero exit
	// is reported as an *ExitError.
	Stream(ctx context.Context, opts StreamOptions, cmd Command) error
}

// RealExecutor uses actual exec.Command to execute system commands.
// This is the production implementation used in normal operation.
type RealExecutor struct{}

// Run executes a system command using exec.CommandContext.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Output runs a command and returns its standard output.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Start starts a command without waiting for it to complete.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Start(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Start()
}

// Stream runs a command with line-by-line output delivery.
func (*RealExecutor) Stream(ctx context.Context, opts StreamOptions, cmd Command) error {
	//nolint:gosec // Intentional: runs build/setup commands assembled by callers
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = opts.Dir
	if opts.Env != nil {
		c.Env = opts.Env
	}

	pr, pw := io.Pipe()
	c.Stdout = pw
	c.Stderr = pw

	if err := c.Start(); err != nil {
		_ = pw.Close()
		return fmt.Errorf("failed to start %s: %w", cmd.Name, err)
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if opts.Sink != nil {
				opts.Sink(scanner.Text())
			}
		}
	}()

	err := c.Wait()
	_ = pw.Close()
	<-drained

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: cmd, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("command %s: %w", cmd.Name, err)
	}
	return nil
}
