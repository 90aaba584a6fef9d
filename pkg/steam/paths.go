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
	"strings"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// LibraryFoldersFile is the per-install library declaration file name.
const LibraryFoldersFile = "libraryfolders.vdf"

const drivePattern = `^[A-Za-z]:\\`

// WindowsPathToUnix maps a Windows-style path from Steam config onto the
// Wine prefix. `X:\rest` becomes `<prefix>/drive_x/rest`; anything not
// drive-rooted is only backslash-normalized.
func WindowsPathToUnix(prefix, value string) string {
	normalized := strings.ReplaceAll(value, `\\`, `\`)

	re := helpers.CachedMustCompile(drivePattern)
	if !re.MatchString(normalized) {
		return strings.ReplaceAll(normalized, `\`, "/")
	}

	drive := strings.ToLower(normalized[:1])
	remainder := strings.ReplaceAll(normalized[3:], `\`, "/")

	base := filepath.Join(prefix, "drive_"+drive)
	if drive == "c" {
		// Wine only ever creates drive_c; other letters are dosdevices
		// symlinks but Steam configs still refer to them by letter.
		base = filepath.Join(prefix, "drive_c")
	}
	return filepath.Join(base, remainder)
}

// LibraryRoots resolves every Steam library directory reachable from the
// prefix. steamDir comes first when it exists; additional roots are read
// from libraryfolders.vdf in declaration order, translated onto the
// prefix, existence-checked and deduplicated by resolved path. A library
// that is declared but currently absent is dropped silently.
func LibraryRoots(fsys afero.Fs, prefix, steamDir string) []string {
	var roots []string
	seen := make(map[string]bool)

	appendRoot := func(path string) {
		resolved := helpers.ResolvePath(path)
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		roots = append(roots, path)
	}

	if ok, _ := afero.Exists(fsys, steamDir); ok {
		appendRoot(steamDir)
	}

	libraryVDF := filepath.Join(steamDir, "steamapps", LibraryFoldersFile)
	if ok, _ := afero.Exists(fsys, libraryVDF); !ok {
		return roots
	}

	for _, pair := range ScanPairsFile(fsys, libraryVDF) {
		if pair.Key != "path" {
			continue
		}
		converted := WindowsPathToUnix(prefix, pair.Value)
		if ok, _ := afero.Exists(fsys, converted); !ok {
			log.Debug().Msgf("declared library not present, skipping: %s", converted)
			continue
		}
		appendRoot(converted)
	}

	return roots
}
