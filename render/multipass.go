// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/tree"
)

// renderMulti renders NumPasses jittered passes and averages them in the
// accumulation buffer.
func (a *Action) renderMulti(n tree.Node) {
	num := a.NumPasses
	frac := 1 / float32(num)
	for pass := range num {
		a.curPass = pass
		if pass > 0 {
			if a.PassUpdate {
				a.execute(draw.Accum{Op: draw.AccumReturn, Value: float32(num) / float32(pass)})
			}
			if a.PassCallback != nil {
				a.PassCallback(a)
			} else {
				a.execute(draw.Clear{Color: true, Depth: true})
			}
		}
		x, y := Jitter(pass)
		a.execute(draw.Jitter{X: x, Y: y})
		a.renderPass(n)
		if a.HasTerminated() {
			return
		}
		op := draw.AccumAdd
		if pass == 0 {
			op = draw.AccumLoad
		}
		a.execute(draw.Accum{Op: op, Value: frac})
	}
	a.execute(draw.Accum{Op: draw.AccumReturn, Value: 1})
}

// Jitter returns the sub-pixel offset of a pass, in pixels within
// [-0.5, 0.5), from the Halton sequence in bases 2 and 3.
func Jitter(pass int) (x, y float32) {
	return halton(pass+1, 2) - 0.5, halton(pass+1, 3) - 0.5
}

func halton(i, base int) float32 {
	f := float32(1)
	r := float32(0)
	for i > 0 {
		f /= float32(base)
		r += f * float32(i%base)
		i /= base
	}
	return r
}
