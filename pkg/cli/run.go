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

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MacNCheeseProject/macncheese-core/pkg/service"
)

// Run dispatches the selected flag action against the service. Exactly
// one action is performed per invocation.
func (f *Flags) Run(ctx context.Context, svc *service.Service) error {
	switch {
	case *f.Scan:
		for _, game := range svc.ScanGames() {
			fmt.Println(game.Display())
		}
		return nil

	case *f.Status != "":
		status, err := svc.Status(*f.Status)
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil

	case *f.Patch != "":
		_, err := svc.Patch(*f.Patch)
		return err

	case *f.ShowLog != "":
		path, lines, err := svc.DXVKLog(*f.ShowLog)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Println("No DXVK d3d11 log found for this game yet. Launch it with DXVK enabled first.")
			return nil
		}
		printTail(path, lines)
		return nil

	case *f.ShowPlayer != "":
		path, lines, err := svc.PlayerLog(*f.ShowPlayer)
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Println("No Unity Player.log found in the prefix yet. Launch the game once, then try again.")
			return nil
		}
		printTail(path, lines)
		return nil

	case *f.InstallTools:
		return waitPipeline(svc.InstallTools(ctx))

	case *f.BuildDXVK:
		return waitPipeline(svc.BuildDXVK(ctx))

	case *f.InitPrefix:
		return waitPipeline(svc.InitPrefix(ctx))

	case *f.InstallSteam:
		return waitPipeline(svc.InstallSteam(ctx))

	case *f.LaunchSteam:
		proc, err := svc.LaunchSteam(ctx)
		if err != nil {
			return err
		}
		waitInterruptible(ctx, proc.Wait)
		return nil

	case *f.Launch != "":
		proc, err := svc.LaunchGame(ctx, *f.Launch)
		if err != nil {
			return err
		}
		waitInterruptible(ctx, proc.Wait)
		return nil
	}

	flagUsage()
	return nil
}

func waitPipeline(done <-chan error, err error) error {
	if err != nil {
		return err
	}
	return <-done
}

// waitInterruptible blocks on wait but lets SIGINT/SIGTERM return early
// so the caller's shutdown path can terminate the process gracefully.
func waitInterruptible(ctx context.Context, wait func() int) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	finished := make(chan struct{})
	go func() {
		wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-sigs:
	case <-ctx.Done():
	}
}

func printTail(path string, lines []string) {
	if len(lines) == 0 {
		fmt.Printf("--- %s (log is empty) ---\n", path)
		return
	}
	fmt.Printf("--- %s (last %d lines) ---\n", path, len(lines))
	for _, line := range lines {
		fmt.Println(line)
	}
}

func flagUsage() {
	fmt.Println("No action given. See -help for available actions.")
}
