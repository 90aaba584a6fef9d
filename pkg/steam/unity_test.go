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

package steam

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnityGame(t *testing.T) {
	t.Parallel()

	t.Run("matching_data_folder", func(t *testing.T) {
		t.Parallel()

		game := installedGame(t, "Cool Game", "CoolGame")
		dataDir := filepath.Join(game.InstallDir(), "CoolGame_Data")
		require.NoError(t, os.MkdirAll(dataDir, 0o755))

		assert.True(t, IsUnityGame(game))
	})

	t.Run("any_data_folder_counts", func(t *testing.T) {
		t.Parallel()

		// The player binary is often renamed; the _Data folder keeps the
		// original name.
		game := installedGame(t, "Cool Game", "CoolGame")
		dataDir := filepath.Join(game.InstallDir(), "original_data")
		require.NoError(t, os.MkdirAll(dataDir, 0o755))

		assert.True(t, IsUnityGame(game))
	})

	t.Run("data_named_file_does_not_count", func(t *testing.T) {
		t.Parallel()

		game := installedGame(t, "Cool Game", "CoolGame")
		file := filepath.Join(game.InstallDir(), "notes_data")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		assert.False(t, IsUnityGame(game))
	})

	t.Run("non_unity_install", func(t *testing.T) {
		t.Parallel()

		game := installedGame(t, "Cool Game", "CoolGame")
		require.NoError(t, os.MkdirAll(
			filepath.Join(game.InstallDir(), "Binaries", "Win64"), 0o755))

		assert.False(t, IsUnityGame(game))
	})

	t.Run("missing_install_dir", func(t *testing.T) {
		t.Parallel()

		game := Game{Name: "Gone", InstallDirName: "Gone", LibraryRoot: t.TempDir()}
		assert.False(t, IsUnityGame(game))
	})
}
