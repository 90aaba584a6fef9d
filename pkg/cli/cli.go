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

// Package cli holds the flag surface and bootstrap shared by the
// per-platform entry points.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MacNCheeseProject/macncheese-core/pkg/config"
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

type Flags struct {
	Scan         *bool
	Status       *string
	Patch        *string
	Launch       *string
	LaunchSteam  *bool
	ShowLog      *string
	ShowPlayer   *string
	BuildDXVK    *bool
	InitPrefix   *bool
	InstallSteam *bool
	InstallTools *bool
	Prefix       *string
	GameArgs     *string
	Version      *bool
}

// SetupFlags defines all common CLI flags between platforms.
func SetupFlags() *Flags {
	return &Flags{
		Scan: flag.Bool(
			"scan",
			false,
			"scan the prefix for installed games and list them",
		),
		Status: flag.String(
			"status",
			"",
			"print folder and detected EXE for an app id",
		),
		Patch: flag.String(
			"patch",
			"",
			"overlay DXVK DLLs into the game folders for an app id",
		),
		Launch: flag.String(
			"launch",
			"",
			"patch and launch a game by app id",
		),
		LaunchSteam: flag.Bool(
			"launch-steam",
			false,
			"launch the Steam client inside the prefix",
		),
		ShowLog: flag.String(
			"log",
			"",
			"show the latest DXVK log for an app id",
		),
		ShowPlayer: flag.String(
			"player-log",
			"",
			"show the latest Unity Player.log for an app id",
		),
		BuildDXVK: flag.Bool(
			"build-dxvk",
			false,
			"build DXVK from source into the install dir",
		),
		InitPrefix: flag.Bool(
			"init-prefix",
			false,
			"create and boot the Wine prefix",
		),
		InstallSteam: flag.Bool(
			"install-steam",
			false,
			"run the Steam installer inside the prefix",
		),
		InstallTools: flag.Bool(
			"install-tools",
			false,
			"install host tooling needed to build DXVK",
		),
		Prefix: flag.String(
			"prefix",
			"",
			"override the configured Wine prefix",
		),
		GameArgs: flag.String(
			"game-args",
			"",
			"extra arguments appended to the game launch",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre(platformID string) {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("MacNCheese v%s (%s)\n", config.AppVersion, platformID)
		os.Exit(0)
	}
}

// Setup initializes logging and loads config, applying flag overrides.
func (f *Flags) Setup(writers []io.Writer) (*config.Instance, error) {
	configDir := filepath.Join(xdg.ConfigHome, config.AppName)
	logDir := filepath.Join(xdg.StateHome, config.AppName)

	if err := helpers.InitLogging(logDir, config.LogFile, writers); err != nil {
		return nil, fmt.Errorf("failed to init logging: %w", err)
	}

	cfg, err := config.NewConfig(configDir, config.DefaultValues())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *f.Prefix != "" {
		cfg.SetPrefix(*f.Prefix)
	}
	if *f.GameArgs != "" {
		cfg.SetExtraArgs(*f.GameArgs)
	}

	return cfg, nil
}
