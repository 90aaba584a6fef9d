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
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// FindPlayerLog locates the newest Unity Player.log inside the prefix,
// preferring logs whose path mentions the game's name or install folder.
// Unity writes these under AppData/LocalLow at one of two depths.
func FindPlayerLog(fsys afero.Fs, prefix, name, installDirName string) string {
	usersDir := filepath.Join(prefix, "drive_c", "users")

	var candidates []string
	for _, pattern := range []string{
		filepath.Join(usersDir, "*", "AppData", "LocalLow", "*", "*", "Player.log"),
		filepath.Join(usersDir, "*", "AppData", "LocalLow", "*", "Player.log"),
	} {
		matches, err := afero.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		candidates = append(candidates, matches...)
	}
	if len(candidates) == 0 {
		return ""
	}

	needle1 := strings.ToLower(name)
	needle2 := strings.ToLower(installDirName)
	var preferred []string
	for _, path := range candidates {
		lowered := strings.ToLower(path)
		if strings.Contains(lowered, needle1) || strings.Contains(lowered, needle2) {
			preferred = append(preferred, path)
		}
	}

	pool := candidates
	if len(preferred) > 0 {
		pool = preferred
	}

	type logFile struct {
		mtime time.Time
		path  string
	}
	stats := make([]logFile, 0, len(pool))
	for _, path := range pool {
		info, err := fsys.Stat(path)
		if err != nil {
			continue
		}
		stats = append(stats, logFile{path: path, mtime: info.ModTime()})
	}
	if len(stats) == 0 {
		return ""
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].mtime.After(stats[j].mtime)
	})
	return stats[0].path
}
