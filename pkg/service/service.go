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

// Package service coordinates the core against the presentation layer:
// catalog scans, per-title status, patching, launching and log retrieval.
package service

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MacNCheeseProject/macncheese-core/pkg/config"
	"github.com/MacNCheeseProject/macncheese-core/pkg/dxvk"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/command"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/syncutil"
	"github.com/MacNCheeseProject/macncheese-core/pkg/steam"
	"github.com/MacNCheeseProject/macncheese-core/pkg/wine"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Service owns the session state: the current catalog, the launch
// bookkeeping tables and the live process handles. All filesystem facts
// are recomputed per operation, never cached across them.
type Service struct {
	cfg    *config.Instance
	fsys   afero.Fs
	exec   command.Executor
	clock  clockwork.Clock
	sink   wine.OutputSink
	worker *worker

	mu    syncutil.RWMutex
	games []steam.Game
	// launchTimes and wineLogs are keyed by app ID; entries are
	// replaced on each launch and never deleted within a session.
	launchTimes map[string]time.Time
	wineLogs    map[string]string
	steamProc   *wine.Process
	gameProc    *wine.Process
}

// Option customizes a Service, mostly for tests.
type Option func(*Service)

// WithExecutor substitutes the external command executor.
func WithExecutor(exec command.Executor) Option {
	return func(s *Service) { s.exec = exec }
}

// WithClock substitutes the clock used for launch timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithFs substitutes the filesystem used for catalog and log reads.
func WithFs(fsys afero.Fs) Option {
	return func(s *Service) { s.fsys = fsys }
}

// WithSink routes user-facing output lines (the append-only log view).
func WithSink(sink wine.OutputSink) Option {
	return func(s *Service) { s.sink = sink }
}

// New creates a Service around a config instance.
func New(cfg *config.Instance, opts ...Option) *Service {
	s := &Service{
		cfg:         cfg,
		fsys:        afero.NewOsFs(),
		exec:        &command.RealExecutor{},
		clock:       clockwork.NewRealClock(),
		worker:      &worker{},
		launchTimes: make(map[string]time.Time),
		wineLogs:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// output appends a line to the user-facing log view.
func (s *Service) output(line string) {
	if s.sink != nil {
		s.sink(line)
	}
}

// steamDir resolves the Steam install inside the configured prefix.
func (s *Service) steamDir() string {
	return steam.FindSteamDir(s.fsys, s.cfg.Prefix())
}

// ScanGames rebuilds the title catalog from disk and replaces the
// previous one wholesale.
func (s *Service) ScanGames() []steam.Game {
	games := steam.ScanGames(s.fsys, s.cfg.Prefix(), s.steamDir())

	s.mu.Lock()
	s.games = games
	s.mu.Unlock()

	log.Info().Msgf("found %d installed game(s)", len(games))
	s.output(fmt.Sprintf("Found %d installed game(s)", len(games)))
	return games
}

// Games returns the catalog from the most recent scan.
func (s *Service) Games() []steam.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]steam.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Game looks up a title by app ID in the current catalog, scanning
// first if no scan has happened yet.
func (s *Service) Game(appID string) (steam.Game, error) {
	s.mu.RLock()
	games := s.games
	s.mu.RUnlock()

	if games == nil {
		games = s.ScanGames()
	}

	for _, g := range games {
		if g.AppID == appID {
			return g, nil
		}
	}
	return steam.Game{}, fmt.Errorf("%w: %s", ErrUnknownGame, appID)
}

// Status renders the per-title status line: name, install folder, and
// the resolved executable or "not found". Resolution failure is a
// normal, reportable outcome here, not an error.
func (s *Service) Status(appID string) (string, error) {
	game, err := s.Game(appID)
	if err != nil {
		return "", err
	}

	exeName := "not found"
	if exe := steam.DetectExe(game); exe != "" {
		exeName = filepath.Base(exe)
	}
	return fmt.Sprintf(
		"Selected: %s | Folder: %s | EXE: %s",
		game.Name, game.InstallDir(), exeName,
	), nil
}

// Patch overlays the built DXVK DLLs into every runtime directory of a
// title and returns the directories written.
func (s *Service) Patch(appID string) ([]string, error) {
	game, err := s.Game(appID)
	if err != nil {
		return nil, err
	}

	binDir := dxvk.BinDir(s.cfg.DXVKInstall())
	exe := steam.DetectExe(game)

	written, err := dxvk.Place(binDir, game.InstallDir(), exe)
	for _, target := range written {
		s.output(fmt.Sprintf("Copied %v -> %s", dxvk.OverlayDLLs, target))
	}
	if err != nil {
		return written, err
	}

	s.output(fmt.Sprintf("Patched %s with local DXVK", game.Name))
	return written, nil
}

// DXVKLog returns the path and tail of the DXVK log best matching the
// title's most recent launch. An empty path means no log yet.
func (s *Service) DXVKLog(appID string) (string, []string, error) {
	game, err := s.Game(appID)
	if err != nil {
		return "", nil, err
	}

	s.mu.RLock()
	launchedAt := s.launchTimes[appID]
	s.mu.RUnlock()

	path := dxvk.FindLog(s.fsys, s.cfg.DXVKLogDir(), game, launchedAt)
	if path == "" {
		return "", nil, nil
	}

	lines, err := dxvk.Tail(s.fsys, path, dxvk.TailLines)
	if err != nil {
		return path, nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}
	return path, lines, nil
}

// WineLog returns the path and tail of the host-side Wine log from the
// title's most recent launch this session.
func (s *Service) WineLog(appID string) (string, []string, error) {
	s.mu.RLock()
	path := s.wineLogs[appID]
	s.mu.RUnlock()

	if path == "" {
		return "", nil, nil
	}
	if ok, _ := afero.Exists(s.fsys, path); !ok {
		return "", nil, nil
	}

	lines, err := dxvk.Tail(s.fsys, path, dxvk.TailLines)
	if err != nil {
		return path, nil, fmt.Errorf("failed to read wine log %s: %w", path, err)
	}
	return path, lines, nil
}

// PlayerLog returns the path and tail of the newest Unity Player.log
// for the title. An empty path means none found yet.
func (s *Service) PlayerLog(appID string) (string, []string, error) {
	game, err := s.Game(appID)
	if err != nil {
		return "", nil, err
	}

	path := wine.FindPlayerLog(s.fsys, s.cfg.Prefix(), game.Name, game.InstallDirName)
	if path == "" {
		return "", nil, nil
	}

	lines, err := dxvk.Tail(s.fsys, path, dxvk.TailLines)
	if err != nil {
		return path, nil, fmt.Errorf("failed to read Player.log %s: %w", path, err)
	}
	return path, lines, nil
}

// LaunchedAt returns when the title was last launched this session.
func (s *Service) LaunchedAt(appID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.launchTimes[appID]
	return t, ok
}

// Busy reports whether a background task currently holds the worker slot.
func (s *Service) Busy() bool {
	return s.worker.busy()
}
