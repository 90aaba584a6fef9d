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

// Package helpers provides filesystem fixtures for tests.
package helpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MacNCheeseProject/macncheese-core/pkg/config"
	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests.
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing.
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for
// tests that exercise the real-fs scanners).
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// ManifestContent renders a minimal appmanifest ACF body.
func ManifestContent(appID, name, installDir string) string {
	return fmt.Sprintf(`"AppState"
{
	"appid"		"%s"
	"Universe"		"1"
	"name"		"%s"
	"installdir"		"%s"
}
`, appID, name, installDir)
}

// LibraryFoldersContent renders a libraryfolders.vdf declaring the
// given library paths.
func LibraryFoldersContent(paths ...string) string {
	var b strings.Builder
	b.WriteString("\"libraryfolders\"\n{\n")
	for i, path := range paths {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t}\n", i, path)
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteManifest creates an appmanifest file under a library root.
func (h *FSHelper) WriteManifest(libraryRoot, appID, name, installDir string) error {
	steamApps := filepath.Join(libraryRoot, "steamapps")
	if err := h.Fs.MkdirAll(steamApps, 0o755); err != nil {
		return fmt.Errorf("failed to create steamapps dir: %w", err)
	}
	path := filepath.Join(steamApps, "appmanifest_"+appID+".acf")
	content := ManifestContent(appID, name, installDir)
	if err := afero.WriteFile(h.Fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// WriteLibraryFolders creates a libraryfolders.vdf under a Steam dir.
func (h *FSHelper) WriteLibraryFolders(steamDir string, paths ...string) error {
	steamApps := filepath.Join(steamDir, "steamapps")
	if err := h.Fs.MkdirAll(steamApps, 0o755); err != nil {
		return fmt.Errorf("failed to create steamapps dir: %w", err)
	}
	content := LibraryFoldersContent(paths...)
	vdf := filepath.Join(steamApps, "libraryfolders.vdf")
	if err := afero.WriteFile(h.Fs, vdf, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write libraryfolders.vdf: %w", err)
	}
	return nil
}

// NewTestConfig builds a config instance with every path anchored
// under baseDir, so tests never touch real user directories.
func NewTestConfig(configDir, baseDir string) (*config.Instance, error) {
	defaults := config.DefaultValues()
	defaults.Paths.Prefix = filepath.Join(baseDir, "prefix")
	defaults.Paths.DXVKSource = filepath.Join(baseDir, "dxvk-src")
	defaults.Paths.DXVKInstall = filepath.Join(baseDir, "dxvk-release")
	defaults.Paths.SteamSetup = filepath.Join(baseDir, "SteamSetup.exe")
	defaults.Paths.DXVKLogDir = filepath.Join(baseDir, "dxvk-logs")

	cfg, err := config.NewConfig(configDir, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to create test config: %w", err)
	}
	return cfg, nil
}
