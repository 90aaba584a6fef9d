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

// Package steam discovers installed Steam titles inside a Wine prefix
// and resolves each title to its launchable executable.
package steam

import (
	"strings"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/spf13/afero"
)

// Valve's text formats reduce, for our purposes, to flat quoted pairs.
// Nesting and braces carry no information we need, so a full VDF parser
// is deliberately not used here.
const pairPattern = `"([^"]+)"\s+"([^"]*)"`

// Pair is a single key/value extracted from a manifest-style file.
type Pair struct {
	Key   string
	Value string
}

// ScanPairs extracts every `"key" "value"` pair from content in order.
// Text that doesn't match the pattern is skipped, never an error.
func ScanPairs(content string) []Pair {
	content = strings.ToValidUTF8(content, "")

	re := helpers.CachedMustCompile(pairPattern)
	matches := re.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	pairs := make([]Pair, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, Pair{Key: m[1], Value: m[2]})
	}
	return pairs
}

// ScanPairsFile reads a file and extracts its pairs. Unreadable files
// yield no pairs; encoding errors in readable files are tolerated.
func ScanPairsFile(fsys afero.Fs, path string) []Pair {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil
	}
	return ScanPairs(string(data))
}
