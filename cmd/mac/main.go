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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MacNCheeseProject/macncheese-core/pkg/cli"
	"github.com/MacNCheeseProject/macncheese-core/pkg/service"
)

const platformID = "mac"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags()
	flags.Pre(platformID)

	cfg, err := flags.Setup(nil)
	if err != nil {
		return err
	}

	svc := service.New(cfg, service.WithSink(func(line string) {
		fmt.Println(line)
	}))
	defer svc.Shutdown()

	return flags.Run(context.Background(), svc)
}
