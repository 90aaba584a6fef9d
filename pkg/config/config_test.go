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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv(CfgEnv, "")

	t.Run("first_run_writes_the_defaults_to_disk", func(t *testing.T) {
		configDir := t.TempDir()

		cfg, err := NewConfig(configDir, DefaultValues())
		require.NoError(t, err)

		path := filepath.Join(configDir, CfgFile)
		assert.Equal(t, path, cfg.Path())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "config_schema = 1")
		assert.Contains(t, string(data), "[paths]")
	})

	t.Run("existing_file_is_loaded", func(t *testing.T) {
		configDir := t.TempDir()
		content := `config_schema = 1
debug_logging = true

[paths]
prefix = "/custom/prefix"

[launch]
extra_args = "-windowed"
dxvk_log_level = "debug"
`
		require.NoError(t, os.WriteFile(
			filepath.Join(configDir, CfgFile), []byte(content), 0o600))

		cfg, err := NewConfig(configDir, DefaultValues())
		require.NoError(t, err)

		assert.Equal(t, "/custom/prefix", cfg.Prefix())
		assert.Equal(t, "-windowed", cfg.ExtraArgs())
		assert.Equal(t, "debug", cfg.DXVKLogLevel())
		assert.True(t, cfg.DebugLogging())
	})

	t.Run("missing_keys_keep_their_defaults", func(t *testing.T) {
		configDir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(configDir, CfgFile),
			[]byte("[paths]\nprefix = \"/custom/prefix\"\n"), 0o600))

		cfg, err := NewConfig(configDir, DefaultValues())
		require.NoError(t, err)

		assert.Equal(t, "/custom/prefix", cfg.Prefix())
		assert.Equal(t, DefaultValues().Paths.DXVKSource, cfg.DXVKSource())
		assert.Equal(t, "info", cfg.DXVKLogLevel())
	})

	t.Run("malformed_file_is_an_error", func(t *testing.T) {
		configDir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(configDir, CfgFile), []byte("{not toml"), 0o600))

		_, err := NewConfig(configDir, DefaultValues())
		assert.Error(t, err)
	})
}

func TestNewConfigEnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "elsewhere.toml")
	t.Setenv(CfgEnv, cfgPath)

	cfg, err := NewConfig(t.TempDir(), DefaultValues())
	require.NoError(t, err)

	assert.Equal(t, cfgPath, cfg.Path())
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(CfgEnv, "")
	configDir := t.TempDir()

	cfg, err := NewConfig(configDir, DefaultValues())
	require.NoError(t, err)

	cfg.SetPrefix("/new/prefix")
	cfg.SetExtraArgs("-dx11")
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(configDir, DefaultValues())
	require.NoError(t, err)
	assert.Equal(t, "/new/prefix", reloaded.Prefix())
	assert.Equal(t, "-dx11", reloaded.ExtraArgs())
}

func TestSteamDir(t *testing.T) {
	t.Setenv(CfgEnv, "")

	cfg, err := NewConfig(t.TempDir(), DefaultValues())
	require.NoError(t, err)
	cfg.SetPrefix("/home/user/wined")

	assert.Equal(t,
		filepath.Join("/home/user/wined", "drive_c", "Program Files (x86)", "Steam"),
		cfg.SteamDir())
}

func TestDefaultValues(t *testing.T) {
	t.Parallel()

	vals := DefaultValues()
	assert.Equal(t, SchemaVersion, vals.ConfigSchema)
	assert.NotEmpty(t, vals.Paths.Prefix)
	assert.NotEmpty(t, vals.Paths.DXVKSource)
	assert.NotEmpty(t, vals.Paths.DXVKInstall)
	assert.NotEmpty(t, vals.Paths.SteamSetup)
	assert.NotEmpty(t, vals.Paths.DXVKLogDir)
	assert.Equal(t, "info", vals.Launch.DXVKLogLevel)
}
