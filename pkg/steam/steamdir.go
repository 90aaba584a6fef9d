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
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FindSteamDir locates the Steam install inside a Wine prefix. The
// 32-bit Program Files location is where the Windows installer puts it;
// the others cover unusual installs.
func FindSteamDir(fsys afero.Fs, prefix string) string {
	candidates := []string{
		filepath.Join(prefix, "drive_c", "Program Files (x86)", "Steam"),
		filepath.Join(prefix, "drive_c", "Program Files", "Steam"),
	}

	for _, path := range candidates {
		if info, err := fsys.Stat(path); err == nil && info.IsDir() {
			log.Debug().Msgf("found Steam installation: %s", path)
			return path
		}
	}

	// Default even when absent so callers get a stable path to report.
	return candidates[0]
}
