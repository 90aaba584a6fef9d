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

// Package wine wraps the Wine runtime: binary discovery, prefix
// environment construction and long-lived process handles.
package wine

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
)

// ErrWineNotFound is returned when no usable wine binary exists on the host.
var ErrWineNotFound = errors.New("wine not found, install Wine first")

// Homebrew and classic manual-install locations, tried after PATH.
var fallbackWinePaths = []string{
	"/opt/homebrew/bin/wine",
	"/usr/local/bin/wine",
}

var fallbackWineserverPaths = []string{
	"/opt/homebrew/bin/wineserver",
	"/usr/local/bin/wineserver",
}

// DLL override that makes Wine prefer the native (overlaid) DXVK DLLs
// with a builtin fallback.
const dxvkDLLOverrides = "dxgi,d3d11,d3d10core=n,b"

// FindWine locates the wine binary via PATH and known fallbacks.
func FindWine() (string, error) {
	if path, err := exec.LookPath("wine"); err == nil {
		return path, nil
	}
	for _, candidate := range fallbackWinePaths {
		if helpers.Exists(candidate) {
			return candidate, nil
		}
	}
	return "", ErrWineNotFound
}

// FindWineserver locates the wineserver binary, defaulting to a bare
// name so PATH resolution can still happen at spawn time.
func FindWineserver() string {
	if path, err := exec.LookPath("wineserver"); err == nil {
		return path
	}
	for _, candidate := range fallbackWineserverPaths {
		if helpers.Exists(candidate) {
			return candidate
		}
	}
	return "wineserver"
}

// PrefixEnv is the process environment pointing Wine at the prefix.
func PrefixEnv(prefix string) []string {
	return setEnv(os.Environ(), "WINEPREFIX", prefix)
}

// LaunchEnv is the game-launch environment: prefix plus DXVK overrides
// and log routing.
func LaunchEnv(prefix, dxvkLogDir, dxvkLogLevel string) []string {
	env := PrefixEnv(prefix)
	env = setEnv(env, "WINEDLLOVERRIDES", dxvkDLLOverrides)
	env = setEnv(env, "DXVK_LOG_PATH", dxvkLogDir)
	env = setEnv(env, "DXVK_LOG_LEVEL", dxvkLogLevel)
	return env
}

// SteamEnv is the Steam-host environment: the prefix with any DXVK
// variables stripped so Steam's own UI renders through builtin DLLs.
func SteamEnv(prefix string) []string {
	env := PrefixEnv(prefix)
	for _, key := range []string{"WINEDLLOVERRIDES", "DXVK_LOG_PATH", "DXVK_LOG_LEVEL"} {
		env = unsetEnv(env, key)
	}
	return env
}

func setEnv(env []string, key, value string) []string {
	env = unsetEnv(env, key)
	return append(env, key+"="+value)
}

func unsetEnv(env []string, key string) []string {
	out := env[:0]
	for _, entry := range env {
		if !strings.HasPrefix(entry, key+"=") {
			out = append(out, entry)
		}
	}
	return out
}
