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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
)

const (
	exeExt = ".exe"

	// Unreal shipping builds are named <Game>-<Platform>-Shipping.exe
	// and reliably identify the real game binary over any wrapper.
	shippingSuffix = "-shipping.exe"
	shippingToken  = "shipping.exe"

	// Subtree scans stop seven directory levels below the install root.
	maxScanDepth = 7
)

// Filenames containing any of these are support tools, not the game.
var utilityTokens = []string{
	"unitycrashhandler",
	"crashhandler",
	"unins",
	"uninstall",
	"setup",
	"launcherhelper",
	"steamerrorreporter",
	"vcredist",
	"dxsetup",
}

type candidate struct {
	path string
	size int64
}

// DetectExe resolves a game to its launchable executable, or "" when no
// plausible executable exists. Resolution is recomputed from current
// disk state on every call; nothing is cached, since patching mutates
// the very tree being searched.
//
// Search runs in priority tiers: the Unreal shipping fast-path wins
// outright, then exact filename matches in the install root, then root
// executables by size, then a depth-bounded subtree scan with
// shipping-named binaries promoted to the front.
func DetectExe(game Game) string {
	installDir := game.InstallDir()
	if !helpers.DirExists(installDir) {
		return ""
	}

	if exe := shippingFastPath(installDir); exe != "" {
		return exe
	}

	var ordered []string
	ordered = append(ordered, exactNameCandidates(game, installDir)...)
	ordered = append(ordered, candidatePaths(rootCandidates(installDir))...)

	shipping, rest := partitionShipping(subtreeCandidates(installDir))
	ordered = append(ordered, candidatePaths(shipping)...)
	ordered = append(ordered, candidatePaths(rest)...)

	// Existence is re-checked at pick time to guard against a patch or
	// copy racing the scan.
	for _, path := range ordered {
		if helpers.IsRegularFile(path) {
			return path
		}
	}
	return ""
}

// shippingFastPath returns the largest shipping-named binary anywhere in
// the install tree, at any depth.
func shippingFastPath(installDir string) string {
	var (
		mu      sync.Mutex
		matches []candidate
	)

	conf := fastwalk.Config{Sort: fastwalk.SortLexical}
	err := fastwalk.Walk(&conf, installDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), shippingSuffix) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		mu.Lock()
		matches = append(matches, candidate{path: path, size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msgf("shipping scan failed: %s", installDir)
	}

	if len(matches) == 0 {
		return ""
	}
	sortBySize(matches)
	return matches[0].path
}

// exactNameCandidates checks the four synthesized filenames in the
// install root and keeps the first one that exists.
func exactNameCandidates(game Game, installDir string) []string {
	names := []string{
		game.InstallDirName + exeExt,
		game.Name + exeExt,
		stripWhitespace(game.Name) + exeExt,
		stripWhitespace(game.InstallDirName) + exeExt,
	}
	for _, name := range names {
		path := filepath.Join(installDir, name)
		if helpers.Exists(path) {
			return []string{path}
		}
	}
	return nil
}

// rootCandidates lists non-utility executables directly in the install
// root, largest first.
func rootCandidates(installDir string) []candidate {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		return nil
	}

	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !isExecutableName(entry.Name()) || isProbablyUtility(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path: filepath.Join(installDir, entry.Name()),
			size: info.Size(),
		})
	}
	sortBySize(found)
	return found
}

// subtreeCandidates collects non-utility executables below the install
// root, down to maxScanDepth directory levels.
func subtreeCandidates(installDir string) []candidate {
	var (
		mu    sync.Mutex
		found []candidate
	)

	conf := fastwalk.Config{Sort: fastwalk.SortLexical}
	err := fastwalk.Walk(&conf, installDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		rel, relErr := filepath.Rel(installDir, path)
		if relErr != nil || rel == "." {
			return nil
		}
		depth := len(strings.Split(rel, string(filepath.Separator)))

		if d.IsDir() {
			// A directory at the depth limit can only contain files
			// beyond it.
			if depth > maxScanDepth {
				return fs.SkipDir
			}
			return nil
		}

		// Root-level files belong to the root scan tier.
		if depth < 2 || depth > maxScanDepth+1 {
			return nil
		}
		if !isExecutableName(d.Name()) || isProbablyUtility(d.Name()) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}

		mu.Lock()
		found = append(found, candidate{path: path, size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msgf("subtree scan failed: %s", installDir)
	}

	return found
}

// partitionShipping splits candidates into shipping-named binaries and
// the rest, each sorted largest first.
func partitionShipping(all []candidate) (shipping, rest []candidate) {
	for _, c := range all {
		if strings.Contains(strings.ToLower(filepath.Base(c.path)), shippingToken) {
			shipping = append(shipping, c)
		} else {
			rest = append(rest, c)
		}
	}
	sortBySize(shipping)
	sortBySize(rest)
	return shipping, rest
}

func isExecutableName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), exeExt)
}

func isProbablyUtility(name string) bool {
	lowered := strings.ToLower(name)
	for _, token := range utilityTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

// sortBySize orders by size descending with path as a stable tie-break.
func sortBySize(c []candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].size != c[j].size {
			return c[i].size > c[j].size
		}
		return c[i].path < c[j].path
	})
}

func candidatePaths(c []candidate) []string {
	paths := make([]string, 0, len(c))
	for _, cand := range c {
		paths = append(paths, cand.path)
	}
	return paths
}

func stripWhitespace(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
