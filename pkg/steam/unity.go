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
	"strings"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
)

// IsUnityGame reports whether a title looks like a Unity build. Unity
// ships a <GameName>_Data folder next to the player binary.
func IsUnityGame(game Game) bool {
	installDir := game.InstallDir()
	if helpers.DirExists(filepath.Join(installDir, game.InstallDirName+"_Data")) {
		return true
	}

	entries, err := os.ReadDir(installDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), "_data") {
			return true
		}
	}
	return false
}
