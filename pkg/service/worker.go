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

import (
	"github.com/MacNCheeseProject/macncheese-core/pkg/helpers/syncutil"
)

// worker is a single-slot background task supervisor. Submitting while a
// task is active is a synchronous rejection, never a queue.
type worker struct {
	mu     syncutil.Mutex
	active bool
}

// tryAcquire claims the slot or reports ErrTaskActive.
func (w *worker) tryAcquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active {
		return ErrTaskActive
	}
	w.active = true
	return nil
}

func (w *worker) release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = false
}

func (w *worker) busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}
