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

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MacNCheeseProject/macncheese-core/pkg/dxvk"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/command"
	"github.com/MacNCheeseProject/macncheese-core/pkg/steam"
	"github.com/MacNCheeseProject/macncheese-core/pkg/wine"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// shutdownGrace is how long live processes get to exit on shutdown.
const shutdownGrace = 2 * time.Second

// LaunchSteam starts the Steam client inside the prefix. At most one
// Steam process may be alive at a time.
func (s *Service) LaunchSteam(ctx context.Context) (*wine.Process, error) {
	steamDir := s.steamDir()
	steamExe := filepath.Join(steamDir, "steam.exe")
	if ok, _ := afero.Exists(s.fsys, steamExe); !ok {
		return nil, fmt.Errorf("steam is not installed in this prefix yet (%s)", steamExe)
	}

	s.mu.Lock()
	if s.steamProc != nil && s.steamProc.Running() {
		s.mu.Unlock()
		return nil, ErrSteamRunning
	}
	s.mu.Unlock()

	wineBin, err := wine.FindWine()
	if err != nil {
		return nil, err
	}

	proc, err := wine.Start(ctx, wine.Spec{
		Name:    "steam",
		Dir:     steamDir,
		Command: wineBin,
		Args:    []string{"steam.exe", "-no-cef-sandbox", "-vgui"},
		Env:     wine.SteamEnv(s.cfg.Prefix()),
	}, s.sink, func(code int) {
		s.output(fmt.Sprintf("Steam exited with code %d", code))
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.steamProc = proc
	s.mu.Unlock()

	s.output("Steam started")
	return proc, nil
}

// LaunchGame patches and starts a title. The executable is resolved
// fresh, DLLs are overlaid after the final choice so they land in the
// right folders, and the launch timestamp is recorded for later log
// correlation. On exit the diagnostic logs are appended to the output.
func (s *Service) LaunchGame(ctx context.Context, appID string) (*wine.Process, error) {
	game, err := s.Game(appID)
	if err != nil {
		return nil, err
	}

	exe := steam.DetectExe(game)
	if exe == "" {
		return nil, fmt.Errorf("%w: %s (folder: %s)", ErrNoExecutable, game.Name, game.InstallDir())
	}

	s.mu.RLock()
	steamAlive := s.steamProc != nil && s.steamProc.Running()
	gameAlive := s.gameProc != nil && s.gameProc.Running()
	s.mu.RUnlock()
	if !steamAlive {
		return nil, ErrSteamNotRunning
	}
	if gameAlive {
		return nil, ErrGameRunning
	}

	wineBin, err := wine.FindWine()
	if err != nil {
		return nil, err
	}

	// Patch after the final EXE choice so DLLs land in the right folders.
	if _, err := s.Patch(appID); err != nil {
		return nil, err
	}

	logDir := s.cfg.DXVKLogDir()
	if err := s.fsys.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create DXVK log dir: %w", err)
	}

	args := []string{filepath.Base(exe)}
	if extra := strings.TrimSpace(s.cfg.ExtraArgs()); extra != "" {
		args = append(args, strings.Fields(extra)...)
	}

	safeName := helpers.SanitizeFilename(game.InstallDirName)
	if safeName == "" {
		safeName = helpers.SanitizeFilename(game.Name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	// Unity won't write a host-readable log unless told to.
	if steam.IsUnityGame(game) {
		unityLog := filepath.Join(home, safeName+"-player.log")
		args = append(args, "-logFile", unityLog)
		s.output(fmt.Sprintf("Unity log file will be written to: %s", unityLog))
	}

	wineLogPath := filepath.Join(home, safeName+"-wine.log")
	wineLog, err := s.fsys.Create(wineLogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create wine log %s: %w", wineLogPath, err)
	}
	s.output(fmt.Sprintf("Wine output will be written to: %s", wineLogPath))

	s.mu.Lock()
	s.launchTimes[appID] = s.clock.Now()
	s.wineLogs[appID] = wineLogPath
	s.mu.Unlock()

	sink := func(line string) {
		if _, err := wineLog.WriteString(line + "\n"); err != nil {
			log.Debug().Err(err).Msg("failed to append wine log")
		}
		s.output(line)
	}

	proc, err := wine.Start(ctx, wine.Spec{
		Name: "game",
		// Run Wine from the EXE's folder; some games resolve assets
		// and DLLs relative to it.
		Dir:     filepath.Dir(exe),
		Command: wineBin,
		Args:    args,
		Env:     wine.LaunchEnv(s.cfg.Prefix(), logDir, s.cfg.DXVKLogLevel()),
	}, sink, func(code int) {
		if err := wineLog.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close wine log")
		}
		s.output(fmt.Sprintf("%s exited with code %d", game.Name, code))
		s.showPostExitLogs(game)
	})
	if err != nil {
		_ = wineLog.Close()
		return nil, err
	}

	s.mu.Lock()
	s.gameProc = proc
	s.mu.Unlock()

	s.output(fmt.Sprintf("Started %s", game.Name))
	return proc, nil
}

// showPostExitLogs appends the correlated diagnostics to the output in
// a fixed order: DXVK log, host-side wine log, Unity Player.log.
func (s *Service) showPostExitLogs(game steam.Game) {
	if path, lines, err := s.DXVKLog(game.AppID); err == nil && path != "" {
		s.outputTail("DXVK log: "+filepath.Base(path), lines)
	}

	if path, lines, err := s.WineLog(game.AppID); err == nil && path != "" {
		s.outputTail("Wine log: "+filepath.Base(path), lines)
	}

	if steam.IsUnityGame(game) {
		if path, lines, err := s.PlayerLog(game.AppID); err == nil && path != "" {
			s.outputTail("Unity Player.log: "+path, lines)
		}
	}
}

func (s *Service) outputTail(header string, lines []string) {
	if len(lines) == 0 {
		s.output(fmt.Sprintf("--- %s (log is empty) ---", header))
		return
	}
	s.output(fmt.Sprintf("--- %s (last %d lines) ---", header, len(lines)))
	for _, line := range lines {
		s.output(line)
	}
}

// Shutdown terminates any live processes, giving each a bounded grace
// period before the shutdown proceeds regardless.
func (s *Service) Shutdown() {
	s.mu.Lock()
	procs := []*wine.Process{s.gameProc, s.steamProc}
	s.mu.Unlock()

	for _, proc := range procs {
		if proc != nil {
			proc.Stop(shutdownGrace)
		}
	}
}

// runPipeline claims the worker slot and runs commands sequentially in
// the background. The returned channel yields the pipeline result. A
// busy slot is a synchronous rejection with no state change.
func (s *Service) runPipeline(
	ctx context.Context, dir string, env []string, cmds []command.Command,
) (<-chan error, error) {
	if err := s.worker.tryAcquire(); err != nil {
		return nil, err
	}

	s.output("Task running")
	done := make(chan error, 1)

	go func() {
		defer s.worker.release()

		for _, cmd := range cmds {
			s.output("$ " + cmd.String())
			err := s.exec.Stream(ctx, command.StreamOptions{
				Sink: s.output,
				Dir:  dir,
				Env:  env,
			}, cmd)
			if err != nil {
				s.output(fmt.Sprintf("Failed: %s", err))
				done <- err
				return
			}
		}

		s.output("Done")
		done <- nil
	}()

	return done, nil
}

// InstallTools installs the host tooling needed to build DXVK.
func (s *Service) InstallTools(ctx context.Context) (<-chan error, error) {
	return s.runPipeline(ctx, "", nil, dxvk.ToolInstallCommands())
}

// BuildDXVK runs the meson/ninja pipeline for the configured source and
// install directories.
func (s *Service) BuildDXVK(ctx context.Context) (<-chan error, error) {
	if _, err := wine.FindWine(); err != nil {
		return nil, err
	}

	installDir := s.cfg.DXVKInstall()
	cmds, err := dxvk.BuildCommands(s.cfg.DXVKSource(), installDir)
	if err != nil {
		return nil, err
	}

	if err := s.fsys.MkdirAll(installDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create DXVK install dir: %w", err)
	}

	s.output(fmt.Sprintf("Building DXVK in: %s", filepath.Join(installDir, dxvk.BuildDirName)))
	return s.runPipeline(ctx, s.cfg.DXVKSource(), nil, cmds)
}

// InitPrefix creates the Wine prefix and boots it.
func (s *Service) InitPrefix(ctx context.Context) (<-chan error, error) {
	wineBin, err := wine.FindWine()
	if err != nil {
		return nil, err
	}

	prefix := s.cfg.Prefix()
	if err := s.fsys.MkdirAll(prefix, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create prefix: %w", err)
	}

	return s.runPipeline(ctx, "", wine.PrefixEnv(prefix), []command.Command{
		{Name: wineBin, Args: []string{"wineboot"}},
	})
}

// InstallSteam runs the Windows Steam installer inside the prefix.
func (s *Service) InstallSteam(ctx context.Context) (<-chan error, error) {
	wineBin, err := wine.FindWine()
	if err != nil {
		return nil, err
	}

	setup := s.cfg.SteamSetup()
	if ok, _ := afero.Exists(s.fsys, setup); !ok {
		return nil, fmt.Errorf("SteamSetup.exe not found at %s", setup)
	}

	return s.runPipeline(ctx, "", wine.PrefixEnv(s.cfg.Prefix()), []command.Command{
		{Name: wineBin, Args: []string{setup}},
	})
}
