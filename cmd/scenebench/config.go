// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenekit/core/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config <file>",
		Short:   "write the default settings to a .toml or .yaml file",
		Args:    cobra.ExactArgs(1),
		Example: `scenebench config scenekit.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.New().Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
