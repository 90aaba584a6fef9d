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

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "MACNCHEESE_CFG"
)

type Values struct {
	Paths        Paths  `toml:"paths"`
	Launch       Launch `toml:"launch,omitempty"`
	ConfigSchema int    `toml:"config_schema"`
	DebugLogging bool   `toml:"debug_logging"`
}

// Paths holds every user-configurable filesystem location.
type Paths struct {
	// Prefix is the Wine prefix emulating a Windows drive layout.
	Prefix string `toml:"prefix"`
	// DXVKSource is a checkout of the DXVK source tree.
	DXVKSource string `toml:"dxvk_source"`
	// DXVKInstall is where built DXVK artifacts are installed (bin/ holds the DLLs).
	DXVKInstall string `toml:"dxvk_install"`
	// SteamSetup is the Windows Steam installer executable.
	SteamSetup string `toml:"steam_setup"`
	// DXVKLogDir is where DXVK writes its runtime logs.
	DXVKLogDir string `toml:"dxvk_log_dir"`
}

type Launch struct {
	// ExtraArgs is appended verbatim to every game launch.
	ExtraArgs string `toml:"extra_args,omitempty"`
	// DXVKLogLevel is exported as DXVK_LOG_LEVEL on game launches.
	DXVKLogLevel string `toml:"dxvk_log_level,omitempty"`
}

// DefaultValues returns the stock configuration, anchored at the user's
// home directory when one can be determined.
func DefaultValues() Values {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get user home directory")
		home = "."
	}
	return Values{
		ConfigSchema: SchemaVersion,
		Paths: Paths{
			Prefix:      filepath.Join(home, "wined"),
			DXVKSource:  filepath.Join(home, "DXVK-macOS"),
			DXVKInstall: filepath.Join(home, "dxvk-release"),
			SteamSetup:  filepath.Join(home, "Downloads", "SteamSetup.exe"),
			DXVKLogDir:  filepath.Join(home, "dxvk-logs"),
		},
		Launch: Launch{
			DXVKLogLevel: "info",
		},
	}
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads config from configDir, writing the defaults to disk on
// first run. The MACNCHEESE_CFG env var overrides the config file path.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath != "" {
		log.Debug().Msgf("env config path: %s", cfgPath)
	} else {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		mu:       syncutil.RWMutex{},
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and replaces the current values from the config file.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return fmt.Errorf("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	vals := c.defaults
	if err := toml.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	c.vals = vals
	log.Info().Msgf("loaded config: %s", c.cfgPath)
	return nil
}

// Save writes the current values to the config file.
func (c *Instance) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cfgPath == "" {
		return fmt.Errorf("config path not set")
	}

	if err := os.MkdirAll(filepath.Dir(c.cfgPath), 0o750); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) Prefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.Prefix
}

// SetPrefix overrides the Wine prefix for this run without saving.
func (c *Instance) SetPrefix(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Paths.Prefix = path
}

// SteamDir is the canonical Steam install location inside the prefix.
func (c *Instance) SteamDir() string {
	return filepath.Join(c.Prefix(), "drive_c", "Program Files (x86)", "Steam")
}

func (c *Instance) DXVKSource() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.DXVKSource
}

func (c *Instance) DXVKInstall() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.DXVKInstall
}

func (c *Instance) SteamSetup() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.SteamSetup
}

func (c *Instance) DXVKLogDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.DXVKLogDir
}

func (c *Instance) ExtraArgs() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Launch.ExtraArgs
}

// SetExtraArgs overrides extra game arguments for this run without saving.
func (c *Instance) SetExtraArgs(args string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launch.ExtraArgs = args
}

func (c *Instance) DXVKLogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Launch.DXVKLogLevel == "" {
		return "info"
	}
	return c.vals.Launch.DXVKLogLevel
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}
