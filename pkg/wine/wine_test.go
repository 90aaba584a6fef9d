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

package wine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envValues(env []string, key string) []string {
	var values []string
	for _, entry := range env {
		if strings.HasPrefix(entry, key+"=") {
			values = append(values, strings.TrimPrefix(entry, key+"="))
		}
	}
	return values
}

func TestPrefixEnv(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel.
	t.Setenv("WINEPREFIX", "/somewhere/else")

	env := PrefixEnv("/home/user/wined")
	assert.Equal(t, []string{"/home/user/wined"}, envValues(env, "WINEPREFIX"))
}

func TestLaunchEnv(t *testing.T) {
	t.Parallel()

	env := LaunchEnv("/home/user/wined", "/home/user/dxvk-logs", "debug")

	assert.Equal(t, []string{"/home/user/wined"}, envValues(env, "WINEPREFIX"))
	assert.Equal(t,
		[]string{"dxgi,d3d11,d3d10core=n,b"},
		envValues(env, "WINEDLLOVERRIDES"))
	assert.Equal(t, []string{"/home/user/dxvk-logs"}, envValues(env, "DXVK_LOG_PATH"))
	assert.Equal(t, []string{"debug"}, envValues(env, "DXVK_LOG_LEVEL"))
}

func TestSteamEnv(t *testing.T) {
	// Steam must never inherit DXVK routing from the surrounding shell.
	t.Setenv("WINEDLLOVERRIDES", "dxgi=n")
	t.Setenv("DXVK_LOG_PATH", "/tmp/logs")
	t.Setenv("DXVK_LOG_LEVEL", "debug")

	env := SteamEnv("/home/user/wined")

	assert.Equal(t, []string{"/home/user/wined"}, envValues(env, "WINEPREFIX"))
	assert.Empty(t, envValues(env, "WINEDLLOVERRIDES"))
	assert.Empty(t, envValues(env, "DXVK_LOG_PATH"))
	assert.Empty(t, envValues(env, "DXVK_LOG_LEVEL"))
}
