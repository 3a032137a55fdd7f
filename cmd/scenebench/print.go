// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/spf13/cobra"

	"github.com/scenekit/core/nodes"
	"github.com/scenekit/core/printer"
	"github.com/scenekit/core/search"
	"github.com/scenekit/core/tree"
)

func newPrintCmd(root *rootOptions) *cobra.Command {
	scene := sceneOptions{size: 2, caching: "auto", culling: "auto"}
	var find string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "print the tree of a synthetic scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			lib := nodes.NewLibrary(cfg, nil)
			sc := buildScene(scene)
			p := printer.New(lib)
			p.ShowPathCodes = find != ""
			if find == "" {
				p.Apply(sc)
				fmt.Fprint(cmd.OutOrStdout(), p.String())
				return nil
			}
			s := search.New(lib)
			s.Find = search.ByName
			s.Name = find
			s.Interest = search.All
			s.Apply(sc)
			if !s.IsFound() {
				if near := closestName(sc, find); near != "" {
					return fmt.Errorf("no node named %q; did you mean %q?", find, near)
				}
				return fmt.Errorf("no node named %q", find)
			}
			p.ApplyList(s.Paths(), false)
			fmt.Fprint(cmd.OutOrStdout(), p.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&scene.size, "size", scene.size, "cells on each side of the grid")
	cmd.Flags().StringVar(&find, "find", "", "only print the paths to nodes with this name")
	return cmd
}

// closestName returns the name of the node under root that is most similar
// to name, or "" if no node has a name.
func closestName(root tree.Node, name string) string {
	metric := metrics.NewLevenshtein()
	best, score := "", -1.0
	tree.WalkDown(root, func(n tree.Node) bool {
		nm := n.AsTree().Name
		if nm == "" {
			return tree.Continue
		}
		if sim := strutil.Similarity(name, nm, metric); sim > score {
			best, score = nm, sim
		}
		return tree.Continue
	})
	return best
}
