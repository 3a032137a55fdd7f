// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package draw defines the boundary between render traversal and a
// graphics backend: the commands traversal emits, the [Renderer] that
// executes them, and the [Capabilities] query used to pick render paths.
package draw

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"
)

// Command is one drawing or state command.
type Command interface {
	fmt.Stringer
}

// Renderer executes commands for one graphics context.
type Renderer interface {
	Execute(cmd Command)
}

// ErrorChecker is an optional interface for renderers that can report
// backend errors; they are checked after each child when error debugging
// is enabled.
type ErrorChecker interface {
	CheckErrors() []string
}

// Buffer names a framebuffer component for [Capabilities.Bits].
type Buffer int32

const (
	DepthBuffer Buffer = iota
	AlphaBuffer
	AccumBuffer
)

// Features queried through [Capabilities.Supported].
const (
	FeatureSortedLayersBlend = "sorted_layers_blend"
	FeatureDepthTexture      = "depth_texture"
)

// Capabilities answers runtime questions about a graphics context.
type Capabilities interface {

	// Supported reports whether the named feature is available in the context.
	Supported(feature string, ctx uuid.UUID) bool

	// Bits returns the bit depth of the given buffer in the context.
	Bits(buf Buffer, ctx uuid.UUID) int
}

// StaticCaps is a [Capabilities] with fixed answers for every context.
type StaticCaps struct {
	Features  map[string]bool
	DepthBits int
	AlphaBits int
	AccumBits int
}

// FullCaps returns capabilities that support every render path.
func FullCaps() *StaticCaps {
	return &StaticCaps{
		Features:  map[string]bool{FeatureSortedLayersBlend: true, FeatureDepthTexture: true},
		DepthBits: 24,
		AlphaBits: 8,
		AccumBits: 16,
	}
}

func (c *StaticCaps) Supported(feature string, _ uuid.UUID) bool {
	return c.Features[feature]
}

func (c *StaticCaps) Bits(buf Buffer, _ uuid.UUID) int {
	switch buf {
	case DepthBuffer:
		return c.DepthBits
	case AlphaBuffer:
		return c.AlphaBits
	case AccumBuffer:
		return c.AccumBits
	}
	return 0
}

// DrawShape draws one shape with the given world transform and color.
type DrawShape struct {
	Node       uint64
	Kind       string
	Matrix     math32.Matrix4
	Color      color.RGBA
	Primitives int
}

func (c DrawShape) String() string {
	return fmt.Sprintf("draw %s #%d", c.Kind, c.Node)
}

// BlendFactor is a blending source or destination factor.
type BlendFactor int32

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// Blend sets the blending state.
type Blend struct {
	Enabled bool
	Src     BlendFactor
	Dst     BlendFactor
}

func (c Blend) String() string {
	if !c.Enabled {
		return "blend off"
	}
	return fmt.Sprintf("blend %d %d", c.Src, c.Dst)
}

// DepthFunc is a depth comparison function.
type DepthFunc int32

const (
	DepthLess DepthFunc = iota
	DepthLEqual
	DepthGreater
)

// Depth sets the depth buffer state.
type Depth struct {
	Test  bool
	Write bool
	Func  DepthFunc
}

func (c Depth) String() string {
	return fmt.Sprintf("depth test=%t write=%t func=%d", c.Test, c.Write, c.Func)
}

// Face selects polygon faces.
type Face int32

const (
	FaceBack Face = iota
	FaceFront
)

// CullFace sets which faces are discarded, when enabled.
type CullFace struct {
	Enabled bool
	Face    Face
}

func (c CullFace) String() string {
	if !c.Enabled {
		return "cull off"
	}
	if c.Face == FaceFront {
		return "cull front"
	}
	return "cull back"
}

// Viewport sets the viewport rectangle.
type Viewport struct {
	Rect image.Rectangle
}

func (c Viewport) String() string {
	return "viewport " + c.Rect.String()
}

// Camera sets the view from a camera node.
type Camera struct {
	Eye       math32.Vector3
	Direction math32.Vector3
}

func (c Camera) String() string {
	return fmt.Sprintf("camera %v %v", c.Eye, c.Direction)
}

// Jitter sets the sub-pixel projection offset for a multipass pass.
type Jitter struct {
	X, Y float32
}

func (c Jitter) String() string {
	return fmt.Sprintf("jitter %g %g", c.X, c.Y)
}

// Clear clears the color and depth buffers.
type Clear struct {
	Color bool
	Depth bool
}

func (c Clear) String() string {
	return fmt.Sprintf("clear color=%t depth=%t", c.Color, c.Depth)
}

// AccumOp is an accumulation buffer operation.
type AccumOp int32

const (
	// AccumLoad replaces the accumulation buffer with the color buffer times Value.
	AccumLoad AccumOp = iota

	// AccumAdd adds the color buffer times Value to the accumulation buffer.
	AccumAdd

	// AccumReturn writes the accumulation buffer times Value to the color buffer.
	AccumReturn
)

// Accum performs an accumulation buffer operation.
type Accum struct {
	Op    AccumOp
	Value float32
}

func (c Accum) String() string {
	return fmt.Sprintf("accum %d %g", c.Op, c.Value)
}

// CallList marks the replay of a cached command list. The commands of the
// list follow it; a backend that keeps its own copy of the list may execute
// that instead and skip them.
type CallList struct {
	ID uint64
}

func (c CallList) String() string {
	return fmt.Sprintf("call list %d", c.ID)
}

// PeelSetup prepares the layer targets for depth peeling.
type PeelSetup struct {
	Layers int
}

func (c PeelSetup) String() string {
	return fmt.Sprintf("peel setup %d", c.Layers)
}

// PeelBegin starts rendering one depth peeling layer. When TestPrevious is
// set, fragments not behind the depth captured by the previous layer are
// discarded.
type PeelBegin struct {
	Layer        int
	TestPrevious bool
}

func (c PeelBegin) String() string {
	return fmt.Sprintf("peel begin %d", c.Layer)
}

// PeelEnd finishes a layer, capturing its depth for the next one if asked.
type PeelEnd struct {
	Layer        int
	CaptureDepth bool
}

func (c PeelEnd) String() string {
	return fmt.Sprintf("peel end %d", c.Layer)
}

// PeelComposite blends all layers back to front onto the color buffer.
type PeelComposite struct {
	Layers int
}

func (c PeelComposite) String() string {
	return fmt.Sprintf("peel composite %d", c.Layers)
}
