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
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/MacNCheeseProject/macncheese-core/pkg/steam"
	"github.com/spf13/afero"
)

const (
	// LogSuffix is the naming convention for DXVK D3D11 logs.
	LogSuffix = "_d3d11.log"

	// TailLines is how much of a log is shown to the user.
	TailLines = 200

	// LaunchTolerance absorbs clock/flush skew between process start
	// and log-file creation when filtering by launch time.
	LaunchTolerance = 5 * time.Second
)

// FindLog picks the DXVK log most plausibly produced by a launch of this
// game. Name-derived patterns are tried first, falling back to every
// d3d11 log in the directory. When launchedAt is non-zero, logs modified
// at or after launchedAt minus LaunchTolerance win, newest first;
// otherwise the newest candidate overall is returned. "" means no log
// yet, which is a normal outcome.
func FindLog(fsys afero.Fs, logDir string, game steam.Game, launchedAt time.Time) string {
	candidates := logCandidates(fsys, logDir, game)
	if len(candidates) == 0 {
		return ""
	}

	type logFile struct {
		mtime time.Time
		path  string
	}

	stats := make([]logFile, 0, len(candidates))
	for _, path := range candidates {
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

	if !launchedAt.IsZero() {
		cutoff := launchedAt.Add(-LaunchTolerance)
		for _, lf := range stats {
			if !lf.mtime.Before(cutoff) {
				return lf.path
			}
		}
	}

	return stats[0].path
}

// logCandidates gathers the deduplicated pool of plausible log files.
func logCandidates(fsys afero.Fs, logDir string, game steam.Game) []string {
	installDir := game.InstallDirName
	name := game.Name
	stripped := func(s string) string { return strings.ReplaceAll(s, " ", "") }

	patterns := []string{
		installDir + LogSuffix,
		stripped(installDir) + LogSuffix,
		name + LogSuffix,
		stripped(name) + LogSuffix,
		installDir + "*" + LogSuffix,
		stripped(name) + "*" + LogSuffix,
		name + "*" + LogSuffix,
	}

	var candidates []string
	for _, pattern := range patterns {
		matches, err := afero.Glob(fsys, filepath.Join(logDir, pattern))
		if err != nil {
			continue
		}
		candidates = append(candidates, matches...)
	}

	if len(candidates) == 0 {
		matches, err := afero.Glob(fsys, filepath.Join(logDir, "*"+LogSuffix))
		if err != nil {
			return nil
		}
		candidates = matches
	}

	seen := make(map[string]bool, len(candidates))
	unique := candidates[:0]
	for _, path := range candidates {
		resolved := helpers.ResolvePath(path)
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		unique = append(unique, path)
	}
	return unique
}

// Tail returns the last n lines of a text file, tolerating encoding
// errors in the content.
func Tail(fsys afero.Fs, path string, n int) ([]string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err //nolint:wrapcheck // caller reports path context
	}

	text := strings.ToValidUTF8(string(data), "")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
