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
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	manifestPrefix = "appmanifest_"
	manifestExt    = ".acf"
)

// ParseAppManifest parses one appmanifest_*.acf into a Game. Manifests
// missing any of appid/name/installdir are rejected, not errors. The
// owning library root is the manifest's grandparent directory.
func ParseAppManifest(fsys afero.Fs, path string) (Game, bool) {
	pairs := ScanPairsFile(fsys, path)
	if len(pairs) == 0 {
		return Game{}, false
	}

	fields := make(map[string]string, 3)
	for _, pair := range pairs {
		switch pair.Key {
		case "appid", "name", "installdir":
			fields[pair.Key] = pair.Value
		}
	}

	for _, required := range []string{"appid", "name", "installdir"} {
		if fields[required] == "" {
			return Game{}, false
		}
	}

	return Game{
		AppID:          fields["appid"],
		Name:           fields["name"],
		InstallDirName: fields["installdir"],
		LibraryRoot:    filepath.Dir(filepath.Dir(path)),
	}, true
}

// ScanGames builds a fresh catalog of installed titles across every
// library root, sorted case-insensitively by name. Malformed manifests
// are skipped without aborting the scan.
func ScanGames(fsys afero.Fs, prefix, steamDir string) []Game {
	var games []Game

	for _, root := range LibraryRoots(fsys, prefix, steamDir) {
		steamApps := filepath.Join(root, "steamapps")
		entries, err := afero.ReadDir(fsys, steamApps)
		if err != nil {
			continue
		}

		// ReadDir returns entries sorted by filename, which keeps
		// catalog order deterministic across scans.
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() ||
				!strings.HasPrefix(name, manifestPrefix) ||
				!strings.HasSuffix(name, manifestExt) {
				continue
			}

			manifest := filepath.Join(steamApps, name)
			game, ok := ParseAppManifest(fsys, manifest)
			if !ok {
				log.Debug().Msgf("skipping malformed manifest: %s", manifest)
				continue
			}
			games = append(games, game)
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		return strings.ToLower(games[i].Name) < strings.ToLower(games[j].Name)
	})
	return games
}
