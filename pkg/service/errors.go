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

package service

import "errors"

var (
	// ErrTaskActive rejects a background task while another is running.
	ErrTaskActive = errors.New("another setup task is already running")

	// ErrSteamRunning rejects a second Steam launch while one is alive.
	ErrSteamRunning = errors.New("steam is already running")

	// ErrSteamNotRunning rejects a game launch without a Steam host.
	ErrSteamNotRunning = errors.New("steam must be running first")

	// ErrGameRunning rejects a game launch while one is alive.
	ErrGameRunning = errors.New("a game process is already running")

	// ErrUnknownGame reports an app ID absent from the current catalog.
	ErrUnknownGame = errors.New("unknown app id, scan games first")

	// ErrNoExecutable reports a title whose executable could not be
	// resolved. Some games use a launcher or store the EXE in a subfolder.
	ErrNoExecutable = errors.New("no executable detected for game")
)
