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

// Package dxvk builds the DXVK translation layer, overlays its DLLs
// into game install trees and correlates its runtime logs.
package dxvk

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
)

// OverlayDLLs is the fixed set of graphics-API shims copied into game
// directories. They are always copied whole and overwritten, never merged.
var OverlayDLLs = []string{"dxgi.dll", "d3d11.dll", "d3d10core.dll"}

// Place copies the overlay DLLs from binDir into every directory the
// game may execute from: the install root, the resolved executable's
// directory, and every Binaries/Win64 folder in the tree (Unreal loads
// its libraries relative to that folder no matter which wrapper was
// launched). All source DLLs are verified before the first copy; a
// missing source aborts with zero copies. Placement is idempotent and
// best-effort: a copy failure is reported but already-written targets
// stay in place.
func Place(binDir, installDir, exePath string) ([]string, error) {
	for _, dll := range OverlayDLLs {
		src := filepath.Join(binDir, dll)
		if !helpers.IsRegularFile(src) {
			return nil, fmt.Errorf("missing %s in %s, build DXVK first", dll, binDir)
		}
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create install dir %s: %w", installDir, err)
	}

	targets := overlayTargets(installDir, exePath)

	var written []string
	for _, target := range targets {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return written, fmt.Errorf("failed to create overlay target %s: %w", target, err)
		}
		for _, dll := range OverlayDLLs {
			src := filepath.Join(binDir, dll)
			dst := filepath.Join(target, dll)
			if err := copyFile(src, dst); err != nil {
				return written, fmt.Errorf("failed to copy %s to %s: %w", dll, target, err)
			}
		}
		written = append(written, target)
		log.Debug().Msgf("overlaid %d DLLs into %s", len(OverlayDLLs), target)
	}

	return written, nil
}

// overlayTargets computes the deduplicated, sorted set of directories to
// receive the DLLs.
func overlayTargets(installDir, exePath string) []string {
	seen := map[string]bool{helpers.ResolvePath(installDir): true}
	targets := []string{installDir}

	if exePath != "" {
		exeDir := filepath.Dir(exePath)
		if resolved := helpers.ResolvePath(exeDir); !seen[resolved] && helpers.DirExists(exeDir) {
			seen[resolved] = true
			targets = append(targets, exeDir)
		}
	}

	for _, dir := range binariesWin64Dirs(installDir) {
		if resolved := helpers.ResolvePath(dir); !seen[resolved] {
			seen[resolved] = true
			targets = append(targets, dir)
		}
	}

	sort.Strings(targets[1:])
	return targets
}

// binariesWin64Dirs finds every directory ending in Binaries/Win64 under
// root, including inside WindowsNoEditor release layouts.
func binariesWin64Dirs(root string) []string {
	var (
		mu   sync.Mutex
		dirs []string
	)

	conf := fastwalk.Config{Sort: fastwalk.SortLexical}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if d.Name() == "Win64" && filepath.Base(filepath.Dir(path)) == "Binaries" {
			mu.Lock()
			dirs = append(dirs, path)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Msgf("Binaries/Win64 scan failed: %s", root)
	}

	sort.Strings(dirs)
	return dirs
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msgf("error closing %s", src)
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
