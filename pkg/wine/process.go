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

package wine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// OutputSink receives one line of process output at a time.
type OutputSink func(line string)

// Spec describes a long-lived external process to start.
type Spec struct {
	// Name labels the process in logs ("steam", "game").
	Name string
	// Dir is the working directory.
	Dir string
	// Command is the binary to run, Args its arguments.
	Command string
	// Env is the full environment. Nil means inherit.
	Env []string
	Args []string
}

// Process tracks one live external process. Output is drained
// incrementally into the sink; termination is signalled with a bounded
// grace period before the process is killed.
type Process struct {
	cmd      *exec.Cmd
	done     chan struct{}
	name     string
	exitCode int
}

// Start spawns the process and begins draining its output. onExit runs
// once, after output is fully drained, with the process exit code.
func Start(ctx context.Context, spec Spec, sink OutputSink, onExit func(exitCode int)) (*Process, error) {
	//nolint:gosec // Intentional: launches wine with caller-resolved binaries
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = spec.Env
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", spec.Name, err)
	}
	log.Info().Msgf("started %s (pid %d)", spec.Name, cmd.Process.Pid)

	p := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
		name: spec.Name,
	}

	drainPipe := func(r io.Reader) func() error {
		return func() error {
			scanner := bufio.NewScanner(r)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				if sink != nil {
					sink(scanner.Text())
				}
			}
			return nil
		}
	}

	var drain errgroup.Group
	drain.Go(drainPipe(stdout))
	drain.Go(drainPipe(stderr))

	go func() {
		_ = drain.Wait()
		err := cmd.Wait()

		code := 0
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				code = -1
				log.Warn().Err(err).Msgf("%s wait failed", spec.Name)
			}
		}
		p.exitCode = code
		close(p.done)

		log.Info().Msgf("%s exited with code %d", spec.Name, code)
		if onExit != nil {
			onExit(code)
		}
	}()

	return p, nil
}

// Running reports whether the process is still alive.
func (p *Process) Running() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the process exits and returns its exit code.
func (p *Process) Wait() int {
	<-p.done
	return p.exitCode
}

// Stop asks the process to terminate and kills it after the grace
// period. Safe to call on an already-exited process.
func (p *Process) Stop(grace time.Duration) {
	if !p.Running() {
		return
	}

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		log.Debug().Err(err).Msgf("failed to signal %s", p.name)
	}

	select {
	case <-p.done:
	case <-time.After(grace):
		log.Warn().Msgf("%s did not exit within %s, killing", p.name, grace)
		if err := p.cmd.Process.Kill(); err != nil {
			log.Debug().Err(err).Msgf("failed to kill %s", p.name)
		}
		<-p.done
	}
}
