// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"github.com/scenekit/core/config"
	"github.com/scenekit/core/logx"
)

// EnvFlags is the environment variable holding extra flags that are added
// after the command line arguments, quoted as in a shell.
const EnvFlags = "SCENEBENCH_FLAGS"

// commandArgs returns the arguments followed by the flags in env.
func commandArgs(args []string, env string) ([]string, error) {
	if env == "" {
		return args, nil
	}
	extra, err := shellwords.Parse(env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvFlags, err)
	}
	return append(args, extra...), nil
}

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "scenebench",
		Short:         "scenebench renders synthetic scene graphs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logx.UserLevel = slog.LevelDebug
				logx.SetOutput(os.Stderr, logx.UserLevel)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "settings file (.toml or .yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	cmd.AddCommand(newRenderCmd(opts), newPrintCmd(opts), newConfigCmd())
	return cmd
}

// loadConfig returns the settings from the config file, if any, with the
// environment overrides applied.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.New()
	if o.configFile != "" {
		if err := cfg.Open(o.configFile); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}
