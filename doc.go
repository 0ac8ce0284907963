// Package lume provides a backend-agnostic real-time rendering core for Go.
//
// # Overview
//
// lume separates WHAT to render from HOW the graphics API executes it. The
// application describes vertex sets (tess), render passes and shading through
// a small typed surface; a driver registered in the backend package turns
// those descriptions into API calls. The library ships with an in-memory
// headless driver for tests and tooling; GPU drivers plug in through the same
// registry.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/lume"
//		_ "github.com/gogpu/lume/backend/headless"
//	)
//
//	ctx, err := lume.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	fb, _ := ctx.NewFramebuffer(800, 600)
//	defer fb.Close()
//
//	err = ctx.Pipeline(fb, lume.DefaultPipelineState(), func(p lume.Pipeline, sg lume.ShadingGate) error {
//		return sg.Shade(prog, func(ps lume.ProgramScope, rg lume.RenderGate) error {
//			return rg.Render(lume.DefaultRenderState(), func(tg lume.TessGate) error {
//				return tg.Draw(triangle.Whole())
//			})
//		})
//	})
//
// # Gates
//
// Rendering is organized as nested scopes. Pipeline opens a render pass on a
// framebuffer and applies the clear values; ShadingGate binds a shader
// program; RenderGate applies fixed-function render state; TessGate submits
// draws. Each gate is only handed to the callback of its enclosing scope, so
// operations cannot run outside the stage they belong to. An error returned
// from any callback aborts the remaining nested work and propagates out of
// Pipeline, which still ends the pass.
//
// # Tess
//
// A vertex set lives in the tess package. Builders assemble vertices,
// indices and instances, validate their coherency and allocate driver
// storage; views window a tess for drawing; mapped slices edit the contents
// in place. See the tess package documentation.
//
// # Drivers
//
// Drivers implement the backend.Driver contract and register themselves in
// an init function. New picks the best registered driver unless one is
// injected with WithDriver or selected by name with WithDriverName.
package lume

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
