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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MacNCheeseProject/macncheese-core/pkg/config"
	"github.com/MacNCheeseProject/macncheese-core/pkg/dxvk"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/command"
	testhelpers "github.com/MacNCheeseProject/macncheese-core/pkg/testing/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// outputLog collects sink lines for assertions.
type outputLog struct {
	mu    sync.Mutex
	lines []string
}

func (o *outputLog) add(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, line)
}

func (o *outputLog) joined() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

// fixture is a service wired against a throwaway prefix on the real
// filesystem, with one installed title.
type fixture struct {
	svc        *Service
	cfg        *config.Instance
	exec       *command.MockExecutor
	out        *outputLog
	base       string
	installDir string
}

const (
	fixtureAppID = "42"
	fixtureName  = "Cool Game"
	fixtureDir   = "CoolGame"
)

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	t.Setenv(config.CfgEnv, "")

	base := t.TempDir()
	cfg, err := testhelpers.NewTestConfig(t.TempDir(), base)
	require.NoError(t, err)

	h := testhelpers.NewOSFS()
	steamDir := cfg.SteamDir()
	require.NoError(t, h.WriteManifest(steamDir, fixtureAppID, fixtureName, fixtureDir))
	installDir := filepath.Join(steamDir, "steamapps", "common", fixtureDir)
	require.NoError(t, os.MkdirAll(installDir, 0o755))

	exec := &command.MockExecutor{}
	out := &outputLog{}
	svc := New(cfg, append([]Option{
		WithExecutor(exec),
		WithSink(out.add),
	}, opts...)...)

	return &fixture{
		svc:        svc,
		cfg:        cfg,
		exec:       exec,
		out:        out,
		base:       base,
		installDir: installDir,
	}
}

func (f *fixture) writeExe(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.installDir, name)
	require.NoError(t, os.WriteFile(path, []byte("MZ"), 0o644))
	return path
}

// buildDXVK fakes a finished DXVK build under the configured install dir.
func (f *fixture) buildDXVK(t *testing.T) string {
	t.Helper()
	binDir := dxvk.BinDir(f.cfg.DXVKInstall())
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	for _, dll := range dxvk.OverlayDLLs {
		require.NoError(t, os.WriteFile(
			filepath.Join(binDir, dll), []byte("dxvk "+dll), 0o644))
	}
	return binDir
}

func TestServiceCatalog(t *testing.T) {
	f := newFixture(t)

	games := f.svc.ScanGames()
	require.Len(t, games, 1)
	assert.Equal(t, fixtureAppID, games[0].AppID)
	assert.Equal(t, fixtureName, games[0].Name)
	assert.Contains(t, f.out.joined(), "Found 1 installed game(s)")

	t.Run("games_returns_a_copy", func(t *testing.T) {
		got := f.svc.Games()
		require.Len(t, got, 1)
		got[0].AppID = "tampered"
		assert.Equal(t, fixtureAppID, f.svc.Games()[0].AppID)
	})

	t.Run("lookup_scans_lazily", func(t *testing.T) {
		fresh := newFixture(t)
		game, err := fresh.svc.Game(fixtureAppID)
		require.NoError(t, err)
		assert.Equal(t, fixtureName, game.Name)
	})

	t.Run("unknown_app_id", func(t *testing.T) {
		_, err := f.svc.Game("999")
		assert.ErrorIs(t, err, ErrUnknownGame)
	})
}

func TestServiceStatus(t *testing.T) {
	t.Run("resolved_executable", func(t *testing.T) {
		f := newFixture(t)
		f.writeExe(t, fixtureDir+".exe")

		status, err := f.svc.Status(fixtureAppID)
		require.NoError(t, err)
		assert.Equal(t,
			"Selected: Cool Game | Folder: "+f.installDir+" | EXE: CoolGame.exe",
			status)
	})

	t.Run("unresolved_executable_is_reported_not_failed", func(t *testing.T) {
		f := newFixture(t)

		status, err := f.svc.Status(fixtureAppID)
		require.NoError(t, err)
		assert.Contains(t, status, "EXE: not found")
	})
}

func TestServicePatch(t *testing.T) {
	t.Run("overlays_into_the_install_tree", func(t *testing.T) {
		f := newFixture(t)
		f.buildDXVK(t)
		f.writeExe(t, fixtureDir+".exe")
		win64 := filepath.Join(f.installDir, "Binaries", "Win64")
		require.NoError(t, os.MkdirAll(win64, 0o755))

		written, err := f.svc.Patch(fixtureAppID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{f.installDir, win64}, written)

		for _, dll := range dxvk.OverlayDLLs {
			assert.FileExists(t, filepath.Join(f.installDir, dll))
			assert.FileExists(t, filepath.Join(win64, dll))
		}
		assert.Contains(t, f.out.joined(), "Patched Cool Game with local DXVK")
	})

	t.Run("unbuilt_dxvk_is_an_error", func(t *testing.T) {
		f := newFixture(t)
		f.writeExe(t, fixtureDir+".exe")

		_, err := f.svc.Patch(fixtureAppID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "build DXVK first")
	})
}

func TestServiceLogs(t *testing.T) {
	t.Run("dxvk_log_is_correlated_with_the_launch_time", func(t *testing.T) {
		launch := time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC)
		clock := clockwork.NewFakeClockAt(launch)
		f := newFixture(t, WithClock(clock))

		logDir := f.cfg.DXVKLogDir()
		require.NoError(t, os.MkdirAll(logDir, 0o755))
		stale := filepath.Join(logDir, fixtureDir+"2_d3d11.log")
		fresh := filepath.Join(logDir, fixtureDir+"_d3d11.log")
		require.NoError(t, os.WriteFile(stale, []byte("old run\n"), 0o644))
		require.NoError(t, os.WriteFile(fresh, []byte("info: D3D11\n"), 0o644))
		require.NoError(t, os.Chtimes(stale,
			launch.Add(-time.Hour), launch.Add(-time.Hour)))
		require.NoError(t, os.Chtimes(fresh,
			launch.Add(-2*time.Second), launch.Add(-2*time.Second)))

		f.svc.mu.Lock()
		f.svc.launchTimes[fixtureAppID] = clock.Now()
		f.svc.mu.Unlock()

		path, lines, err := f.svc.DXVKLog(fixtureAppID)
		require.NoError(t, err)
		assert.Equal(t, fresh, path)
		assert.Equal(t, []string{"info: D3D11"}, lines)
	})

	t.Run("no_dxvk_log_yet_is_a_normal_outcome", func(t *testing.T) {
		f := newFixture(t)

		path, lines, err := f.svc.DXVKLog(fixtureAppID)
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Nil(t, lines)
	})

	t.Run("wine_log_requires_a_launch_this_session", func(t *testing.T) {
		f := newFixture(t)

		path, _, err := f.svc.WineLog(fixtureAppID)
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("player_log_is_found_in_the_prefix", func(t *testing.T) {
		f := newFixture(t)
		playerLog := filepath.Join(f.cfg.Prefix(), "drive_c", "users",
			"steamuser", "AppData", "LocalLow", "Studio", fixtureDir, "Player.log")
		require.NoError(t, os.MkdirAll(filepath.Dir(playerLog), 0o755))
		require.NoError(t, os.WriteFile(playerLog, []byte("Unity\n"), 0o644))

		path, lines, err := f.svc.PlayerLog(fixtureAppID)
		require.NoError(t, err)
		assert.Equal(t, playerLog, path)
		assert.Equal(t, []string{"Unity"}, lines)
	})
}

func TestLaunchBookkeeping(t *testing.T) {
	launch := time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(launch)
	f := newFixture(t, WithClock(clock))

	_, ok := f.svc.LaunchedAt(fixtureAppID)
	assert.False(t, ok)

	// Relaunches replace the recorded time; entries are never deleted
	// within a session.
	f.svc.mu.Lock()
	f.svc.launchTimes[fixtureAppID] = clock.Now()
	f.svc.mu.Unlock()

	clock.Advance(time.Hour)
	f.svc.mu.Lock()
	f.svc.launchTimes[fixtureAppID] = clock.Now()
	f.svc.mu.Unlock()

	got, ok := f.svc.LaunchedAt(fixtureAppID)
	require.True(t, ok)
	assert.Equal(t, launch.Add(time.Hour), got)
}
