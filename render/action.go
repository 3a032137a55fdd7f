// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render provides the action that draws a scene graph through a
// [draw.Renderer], handling transparency, multipass antialiasing, render
// caching and abort callbacks.
package render

import (
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/scenekit/core/action"
	"github.com/scenekit/core/bbox"
	"github.com/scenekit/core/cache"
	"github.com/scenekit/core/draw"
	"github.com/scenekit/core/element"
	"github.com/scenekit/core/logx"
	"github.com/scenekit/core/nodepath"
	"github.com/scenekit/core/tree"
)

// Action renders a scene graph.
type Action struct {
	action.Base

	// Renderer executes the draw commands.
	Renderer draw.Renderer

	// Caps answers capability queries about the graphics context.
	Caps draw.Capabilities

	// Context identifies the graphics context; render caches are only
	// replayed in the context they were recorded in.
	Context uuid.UUID

	// Viewport is the pixel region rendered to.
	Viewport image.Rectangle

	// TransparencyType selects how transparent objects are drawn.
	TransparencyType TransparencyType

	// TransparentDelayedType selects how deferred transparent objects are drawn.
	TransparentDelayedType TransparentDelayedType

	// SortStrategy selects the distance used to sort transparent objects.
	SortStrategy SortStrategy

	// SortCallback returns the distance of the current object for
	// [CustomCallback].
	SortCallback func(a *Action) float32

	// DelayedObjDepthWrite keeps depth writes on for deferred transparent objects.
	DelayedObjDepthWrite bool

	// Smoothing enables blending for opaque objects too.
	Smoothing bool

	// NumPasses is the number of antialiasing passes.
	NumPasses int

	// PassUpdate shows the intermediate result after each pass.
	PassUpdate bool

	// PassCallback is called between passes instead of clearing the buffers.
	PassCallback func(a *Action)

	// AbortCallback is asked before each child of a group is traversed.
	AbortCallback func(a *Action) AbortCode

	// BBoxCulling computes bounding boxes before rendering, so that culling
	// separators can test them against the view volume.
	BBoxCulling bool

	// Stats accumulates what was drawn in the current frame.
	Stats cache.Stats

	bbox      *bbox.Action
	preRender []func(a *Action)

	rendering     bool
	curPass       int
	transpRender  bool
	delayedRender bool
	backfacePass  bool
	peeling       bool
	peelLayer     int

	delayed    nodepath.List
	transp     nodepath.List
	sorted     []*nodepath.Path
	sortedDist []float32
}

// New returns a new render action drawing through r in a new graphics
// context. A nil caps supports everything.
func New(lib *action.Library, r draw.Renderer, caps draw.Capabilities) *Action {
	a := &Action{
		Renderer:         r,
		Caps:             caps,
		Context:          uuid.New(),
		Viewport:         image.Rect(0, 0, 640, 480),
		TransparencyType: Blend,
		NumPasses:        1,
	}
	if a.Caps == nil {
		a.Caps = draw.FullCaps()
	}
	a.Init(a, lib)
	a.bbox = bbox.New(lib)
	a.bbox.ShareLock(a)
	return a
}

// Register enables the elements used by the action and sets its default
// method, which renders the children of groups.
func Register(lib *action.Library) {
	mm, mat, hints, vv, cull := element.Types(lib.Elements)
	action.EnableElements[*Action](lib, mm, mat, hints, vv, cull)
	action.SetDefaultMethod(lib.Methods, func(a *Action, n tree.Node) {
		if g, ok := n.(tree.Grouper); ok {
			RenderChildren(a, g)
		}
	})
}

// BoundingBoxAction returns the bounding box action used for culling and
// sorting.
func (a *Action) BoundingBoxAction() *bbox.Action {
	return a.bbox
}

// AddPreRenderCallback adds a function called at the start of every frame.
func (a *Action) AddPreRenderCallback(fn func(a *Action)) {
	a.preRender = append(a.preRender, fn)
}

// ClearPreRenderCallbacks removes all pre-render callbacks.
func (a *Action) ClearPreRenderCallbacks() {
	a.preRender = nil
}

// CurPass returns the current antialiasing pass.
func (a *Action) CurPass() int {
	return a.curPass
}

// IsRenderingDelayedPaths returns whether delayed paths are being rendered.
func (a *Action) IsRenderingDelayedPaths() bool {
	return a.delayedRender
}

// IsRenderingTranspPaths returns whether deferred transparent objects are
// being rendered.
func (a *Action) IsRenderingTranspPaths() bool {
	return a.transpRender
}

// IsRenderingTranspBackfaces returns whether the back face pass of deferred
// transparent objects is being rendered.
func (a *Action) IsRenderingTranspBackfaces() bool {
	return a.backfacePass
}

// IsPeeling returns whether depth peeling is in progress, and which layer.
func (a *Action) IsPeeling() (bool, int) {
	return a.peeling, a.peelLayer
}

// BeginTraversal renders a frame, or just traverses when the action is
// applied again from within a frame.
func (a *Action) BeginTraversal(n tree.Node) {
	if a.rendering {
		a.Traverse(n)
		return
	}
	a.rendering = true
	defer func() { a.rendering = false }()
	a.frame(n)
}

// Emit executes a draw command, recording it in the innermost render cache
// being recorded.
func (a *Action) Emit(cmd draw.Command) {
	if rc := cache.Recording(a.State()); rc != nil {
		rc.Record(cmd)
	}
	a.Renderer.Execute(cmd)
}

// execute runs a frame-level command that is never cached.
func (a *Action) execute(cmd draw.Command) {
	a.Renderer.Execute(cmd)
}

// ShapeRendered records a drawn shape in the frame statistics.
func (a *Action) ShapeRendered(primitives int) {
	a.Stats.AddShape(primitives, &a.Lib.Config.AutoCache)
}

// AbortNow is asked before traversing each child of a group. It returns
// true when the child must be skipped.
func (a *Action) AbortNow() bool {
	if a.HasTerminated() {
		return true
	}
	if a.AbortCallback == nil {
		return false
	}
	switch a.AbortCallback(a) {
	case Abort:
		a.SetTerminated(true)
		return true
	case Prune:
		return true
	case Delay:
		a.AddDelayedPath(a.CurPath().Copy())
		return true
	}
	return false
}

// AddDelayedPath adds a path to render after the rest of the scene.
func (a *Action) AddDelayedPath(p *nodepath.Path) {
	if a.delayedRender {
		slog.Error("render.Action: cannot delay a path while rendering delayed paths", "path", p)
		return
	}
	a.State().InvalidateOpenCaches()
	a.delayed.Append(p)
}

// CheckErrors logs the errors reported by the renderer after n was
// rendered, when renderer error debugging is on.
func (a *Action) CheckErrors(n tree.Node) {
	if !a.Lib.Config.GLErrorDebugging {
		return
	}
	ec, ok := a.Renderer.(draw.ErrorChecker)
	if !ok {
		return
	}
	for _, e := range ec.CheckErrors() {
		slog.Error("render.Action: renderer error", "error", e, "node", n.AsTree().String(), "path", a.CurPath())
	}
}

// RenderChildren renders the children of g, asking [Action.AbortNow]
// before each one. A skipped child invalidates the caches being recorded.
func RenderChildren(a *Action, g tree.Grouper) {
	st := a.State()
	action.TraverseChildrenFunc(a, g, func(c tree.Node) {
		if a.AbortNow() {
			st.InvalidateOpenCaches()
			return
		}
		a.Traverse(c)
		a.CheckErrors(c)
	})
}

// frame renders one frame of the scene under n.
func (a *Action) frame(n tree.Node) {
	a.Stats = cache.Stats{}
	if a.BBoxCulling {
		a.bbox.ApplyTo(a)
	}
	a.execute(draw.Viewport{Rect: a.Viewport})
	a.execute(draw.Depth{Test: true, Write: true, Func: draw.DepthLEqual})
	a.execute(draw.Blend{})
	for _, fn := range a.preRender {
		fn(a)
	}
	a.curPass = 0
	if a.NumPasses <= 1 {
		a.renderPass(n)
		return
	}
	if a.Caps.Bits(draw.AccumBuffer, a.Context) == 0 {
		logx.WarnOnce("render.multipass", "render.Action: the graphics context has no accumulation buffer; rendering a single pass", "passes", a.NumPasses)
		a.renderPass(n)
		return
	}
	a.renderMulti(n)
}

func (a *Action) resetQueues() {
	a.delayed.Reset()
	a.transp.Reset()
	clear(a.sorted)
	a.sorted = a.sorted[:0]
	a.sortedDist = a.sortedDist[:0]
}

// renderPass renders the scene once, followed by the deferred transparent
// objects and the delayed paths.
func (a *Action) renderPass(n tree.Node) {
	st := a.State()
	st.Push()
	defer st.Pop()
	a.resetQueues()
	defer a.resetQueues()

	if a.TransparencyType == SortedLayersBlend {
		if a.sortedLayersSupported() {
			a.renderSortedLayers(n)
			return
		}
		logx.WarnOnce("render.sorted_layers", "render.Action: sorted layers transparency is not supported by the graphics context; using sorted object blend")
		a.TransparencyType = SortedObjectBlend
	}

	a.Traverse(n)
	if a.HasTerminated() {
		return
	}
	if a.transp.Len() > 0 || len(a.sorted) > 0 {
		a.renderTransparent()
	}
	if a.delayed.Len() > 0 && !a.HasTerminated() {
		delayed := a.delayed.Copy()
		a.delayedRender = true
		a.ApplyList(delayed, true)
		a.delayedRender = false
	}
}

// setupBlending enables blending for the transparency type.
func (a *Action) setupBlending(t TransparencyType) {
	dst := draw.BlendOneMinusSrcAlpha
	if t.IsAdditive() {
		dst = draw.BlendOne
	}
	a.Emit(draw.Blend{Enabled: true, Src: draw.BlendSrcAlpha, Dst: dst})
}

// HandleTransparency is called by shapes before drawing. It sets up
// blending for the shape, and returns true when the shape must not be
// drawn now, because it has been deferred or belongs to another pass.
func (a *Action) HandleTransparency(transparent bool) bool {
	st := a.State()
	t := a.TransparencyType
	if a.peeling {
		st.InvalidateOpenCaches()
		return false
	}
	if !transparent || t == None || t == ScreenDoor {
		if a.Smoothing {
			a.Emit(draw.Blend{Enabled: true, Src: draw.BlendSrcAlpha, Dst: draw.BlendOneMinusSrcAlpha})
		} else {
			a.Emit(draw.Blend{})
		}
		return false
	}
	if a.transpRender {
		if a.TransparentDelayedType == NonsolidSeparateBackfacePass {
			switch {
			case a.backfacePass && element.IsSolid(st):
				return true
			case a.backfacePass:
				a.Emit(draw.CullFace{Enabled: true, Face: draw.FaceFront})
			default:
				// Solid shapes cull back faces already; the front face pass
				// leaves front culling on, so it is reset for them too.
				a.Emit(draw.CullFace{Enabled: true, Face: draw.FaceBack})
			}
		}
		a.setupBlending(t)
		return false
	}
	if a.delayedRender || t == Add || t == Blend {
		a.setupBlending(t)
		return false
	}
	st.InvalidateOpenCaches()
	p := a.CurPath().Copy()
	if t.IsDelayed() {
		a.transp.Append(p)
	} else {
		a.sorted = append(a.sorted, p)
		a.sortedDist = append(a.sortedDist, a.pathDistance(p))
	}
	return true
}

// renderTransparent renders the deferred transparent objects, sorted ones
// farthest first, then the unsorted ones in traversal order.
func (a *Action) renderTransparent() {
	sortFarthestFirst(a.sorted, a.sortedDist)
	sorted := append([]*nodepath.Path(nil), a.sorted...)
	transp := a.transp.Copy()

	a.transpRender = true
	defer func() {
		a.transpRender = false
		a.backfacePass = false
	}()
	if !a.DelayedObjDepthWrite {
		a.execute(draw.Depth{Test: true, Write: false, Func: draw.DepthLEqual})
	}
	passes := 1
	if a.TransparentDelayedType == NonsolidSeparateBackfacePass {
		passes = 2
	}
	for pass := 0; pass < passes && !a.HasTerminated(); pass++ {
		a.backfacePass = passes == 2 && pass == 0
		for _, p := range sorted {
			if a.HasTerminated() {
				break
			}
			a.ApplyPath(p)
		}
		if transp.Len() > 0 && !a.HasTerminated() {
			a.ApplyList(transp, true)
		}
	}
	if passes == 2 {
		a.execute(draw.CullFace{})
	}
	if !a.DelayedObjDepthWrite {
		a.execute(draw.Depth{Test: true, Write: true, Func: draw.DepthLEqual})
	}
}

// sortedLayersSupported reports whether the context can do depth peeling.
func (a *Action) sortedLayersSupported() bool {
	return a.Caps.Supported(draw.FeatureSortedLayersBlend, a.Context) &&
		a.Caps.Bits(draw.DepthBuffer, a.Context) >= 24 &&
		a.Caps.Bits(draw.AlphaBuffer, a.Context) >= 8
}

// renderSortedLayers renders the scene once per depth peeling layer and
// composites the layers.
func (a *Action) renderSortedLayers(n tree.Node) {
	layers := max(a.Lib.Config.SortedLayersPasses, 1)
	a.peeling = true
	defer func() {
		a.peeling = false
		a.peelLayer = 0
	}()
	a.execute(draw.PeelSetup{Layers: layers})
	for i := range layers {
		a.peelLayer = i
		a.execute(draw.PeelBegin{Layer: i, TestPrevious: i > 0})
		a.Traverse(n)
		a.execute(draw.PeelEnd{Layer: i, CaptureDepth: i < layers-1})
		if a.HasTerminated() {
			break
		}
	}
	a.execute(draw.PeelComposite{Layers: layers})
}

// DelayedPaths returns the paths delayed so far in this pass.
func (a *Action) DelayedPaths() *nodepath.List {
	return &a.delayed
}
