// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scenebench builds synthetic scene graphs and renders them
// through a recording renderer, to exercise and measure traversal and
// render caching.
package main

import (
	"fmt"
	"os"

	"github.com/scenekit/core/logx"
)

func main() {
	logx.Init()
	cmd := newRootCmd()
	args, err := commandArgs(os.Args[1:], os.Getenv(EnvFlags))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
