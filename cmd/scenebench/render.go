// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/nodes"
	"github.com/scenekit/core/render"
)

type renderOptions struct {
	scene        sceneOptions
	frames       int
	passes       int
	transparency string
	metrics      bool
}

var transparencyTypes = map[string]render.TransparencyType{
	"screen-door":    render.ScreenDoor,
	"add":            render.Add,
	"delayed-add":    render.DelayedAdd,
	"sorted-add":     render.SortedObjectAdd,
	"blend":          render.Blend,
	"delayed-blend":  render.DelayedBlend,
	"sorted-blend":   render.SortedObjectBlend,
	"none":           render.None,
	"sorted-layers":  render.SortedLayersBlend,
	"sorted-tri-add": render.SortedObjectSortedTriangleAdd,
	"sorted-tri":     render.SortedObjectSortedTriangleBlend,
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "render a synthetic scene for a number of frames",
		Args:    cobra.NoArgs,
		Example: `scenebench render --size 20 --frames 10 --transparency sorted-blend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), root, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.scene.size, "size", 10, "cells on each side of the grid")
	f.Float32Var(&opts.scene.transparent, "transparent", 0.25, "fraction of transparent cells")
	f.StringVar(&opts.scene.caching, "caching", "auto", "separator render caching: on, off or auto")
	f.StringVar(&opts.scene.culling, "culling", "auto", "separator culling: on, off or auto")
	f.IntVar(&opts.frames, "frames", 5, "number of frames")
	f.IntVar(&opts.passes, "passes", 1, "antialiasing passes per frame")
	f.StringVar(&opts.transparency, "transparency", "blend", "transparency type")
	f.BoolVar(&opts.metrics, "metrics", false, "print the cache metrics after rendering")
	return cmd
}

func runRender(w io.Writer, root *rootOptions, opts *renderOptions) error {
	tt, ok := transparencyTypes[opts.transparency]
	if !ok {
		return fmt.Errorf("unknown transparency type %q", opts.transparency)
	}
	if opts.scene.size <= 0 || opts.frames <= 0 {
		return fmt.Errorf("size and frames must be positive")
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	lib := nodes.NewLibrary(cfg, reg)
	rec := &draw.Recorder{}
	ra := render.New(lib, rec, nil)
	ra.TransparencyType = tt
	ra.NumPasses = opts.passes
	scene := buildScene(opts.scene)
	slog.Debug("scenebench: scene built", "cells", opts.scene.size*opts.scene.size, "caching", opts.scene.caching)

	for frame := range opts.frames {
		rec.Reset()
		start := time.Now()
		ra.Apply(scene)
		fmt.Fprintf(w, "frame %d: %d commands, %d shapes drawn, %d call lists, %v\n", frame,
			len(rec.Commands()), len(draw.Filter[draw.DrawShape](rec)),
			len(draw.Filter[draw.CallList](rec)), time.Since(start).Round(time.Microsecond))
	}
	fmt.Fprintf(w, "render caches: %d lists\n", lib.Caches.Len())
	if !opts.metrics {
		return nil
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
