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

package dxvk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builtBinDir creates a bin directory holding all overlay DLLs.
func builtBinDir(t *testing.T) string {
	t.Helper()
	binDir := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	for _, dll := range OverlayDLLs {
		content := []byte("dxvk build of " + dll)
		require.NoError(t,
			os.WriteFile(filepath.Join(binDir, dll), content, 0o644))
	}
	return binDir
}

func TestPlace(t *testing.T) {
	t.Parallel()

	t.Run("covers_install_root_exe_dir_and_win64_folders", func(t *testing.T) {
		t.Parallel()

		binDir := builtBinDir(t)
		installDir := t.TempDir()
		exeDir := filepath.Join(installDir, "Engine", "Bin")
		win64 := filepath.Join(installDir, "Game", "Binaries", "Win64")
		editorWin64 := filepath.Join(installDir,
			"WindowsNoEditor", "Game", "Binaries", "Win64")
		for _, dir := range []string{exeDir, win64, editorWin64} {
			require.NoError(t, os.MkdirAll(dir, 0o755))
		}

		written, err := Place(binDir, installDir, filepath.Join(exeDir, "Game.exe"))
		require.NoError(t, err)

		assert.Equal(t, []string{installDir, exeDir, win64, editorWin64}[0], written[0])
		assert.ElementsMatch(t,
			[]string{installDir, exeDir, win64, editorWin64}, written)

		for _, dir := range written {
			for _, dll := range OverlayDLLs {
				data, readErr := os.ReadFile(filepath.Join(dir, dll))
				require.NoError(t, readErr)
				assert.Equal(t, "dxvk build of "+dll, string(data))
			}
		}
	})

	t.Run("missing_source_dll_aborts_with_zero_copies", func(t *testing.T) {
		t.Parallel()

		binDir := builtBinDir(t)
		require.NoError(t, os.Remove(filepath.Join(binDir, "d3d11.dll")))
		installDir := t.TempDir()

		written, err := Place(binDir, installDir, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "d3d11.dll")
		assert.Empty(t, written)

		_, statErr := os.Stat(filepath.Join(installDir, "dxgi.dll"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("placement_is_idempotent", func(t *testing.T) {
		t.Parallel()

		binDir := builtBinDir(t)
		installDir := t.TempDir()
		require.NoError(t,
			os.MkdirAll(filepath.Join(installDir, "Binaries", "Win64"), 0o755))

		first, err := Place(binDir, installDir, "")
		require.NoError(t, err)
		second, err := Place(binDir, installDir, "")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("existing_dlls_are_overwritten", func(t *testing.T) {
		t.Parallel()

		binDir := builtBinDir(t)
		installDir := t.TempDir()
		stale := filepath.Join(installDir, "dxgi.dll")
		require.NoError(t, os.WriteFile(stale, []byte("wine builtin"), 0o644))

		_, err := Place(binDir, installDir, "")
		require.NoError(t, err)

		data, err := os.ReadFile(stale)
		require.NoError(t, err)
		assert.Equal(t, "dxvk build of dxgi.dll", string(data))
	})

	t.Run("exe_dir_outside_the_tree_is_still_covered", func(t *testing.T) {
		t.Parallel()

		binDir := builtBinDir(t)
		installDir := t.TempDir()
		exeDir := t.TempDir()

		written, err := Place(binDir, installDir, filepath.Join(exeDir, "Game.exe"))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{installDir, exeDir}, written)
	})

	t.Run("install_root_duplicate_exe_dir_is_collapsed", func(t *testing.T) {
		t.Parallel()

		binDir := builtBinDir(t)
		installDir := t.TempDir()

		written, err := Place(binDir, installDir, filepath.Join(installDir, "Game.exe"))
		require.NoError(t, err)
		assert.Equal(t, []string{installDir}, written)
	})
}

func TestBinDir(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/opt/dxvk/bin", BinDir("/opt/dxvk"))
}
