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
	"fmt"
	"path/filepath"
)

// Game is one installed title from an app manifest. Records are rebuilt
// from disk on every scan and never carry identity across scans.
type Game struct {
	// AppID is the Steam application ID, unique within a catalog.
	AppID string
	// Name is the display name from the manifest.
	Name string
	// InstallDirName is the on-disk folder name, which may differ from Name.
	InstallDirName string
	// LibraryRoot is the library directory owning this title.
	LibraryRoot string
}

// InstallDir is the title's on-disk install location.
func (g Game) InstallDir() string {
	return filepath.Join(g.LibraryRoot, "steamapps", "common", g.InstallDirName)
}

// Display is the list label shown to the user.
func (g Game) Display() string {
	return fmt.Sprintf("%s [%s]", g.Name, g.AppID)
}
