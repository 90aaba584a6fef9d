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
	"fmt"
	"path/filepath"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/command"
)

// CrossFile is the meson cross file DXVK ships for 64-bit Windows builds.
const CrossFile = "build-win64.txt"

// BuildDirName is the out-of-tree build directory under the install dir.
const BuildDirName = "build.64"

// BuildCommands assembles the linear meson/ninja pipeline that builds
// DXVK from srcDir into installDir. Commands run in order and the
// pipeline stops at the first non-zero exit.
func BuildCommands(srcDir, installDir string) ([]command.Command, error) {
	crossFile := filepath.Join(srcDir, CrossFile)
	if !helpers.IsRegularFile(crossFile) {
		return nil, fmt.Errorf("DXVK source not found at %s", srcDir)
	}

	buildDir := filepath.Join(installDir, BuildDirName)
	coredata := filepath.Join(buildDir, "meson-private", "coredata.dat")

	mesonArgs := []string{
		"setup",
		buildDir,
		srcDir,
		"--cross-file", crossFile,
		"--prefix", installDir,
		"--buildtype", "release",
		"-Denable_d3d9=false",
	}
	// A build dir with meson state can be reconfigured in place; one
	// without (e.g. an interrupted first run) has to be wiped.
	if helpers.DirExists(buildDir) {
		if helpers.Exists(coredata) {
			mesonArgs = append(mesonArgs, "--reconfigure")
		} else {
			mesonArgs = append(mesonArgs, "--wipe")
		}
	}

	return []command.Command{
		{Name: "meson", Args: mesonArgs},
		{Name: "ninja", Args: []string{"-C", buildDir}},
		{Name: "ninja", Args: []string{"-C", buildDir, "install"}},
	}, nil
}

// BinDir is where a finished build leaves the overlay DLLs.
func BinDir(installDir string) string {
	return filepath.Join(installDir, "bin")
}

// ToolInstallCommands is the host tooling required to build DXVK.
func ToolInstallCommands() []command.Command {
	return []command.Command{
		{Name: "bash", Args: []string{
			"-lc",
			"brew install git meson ninja mingw-w64 glslang p7zip winetricks",
		}},
	}
}
