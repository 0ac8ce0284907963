// Package backend defines the capability contract a graphics driver must
// implement for the lume core.
//
// The core never talks to a GPU API directly. Everything it needs from a
// driver is expressed as a small set of narrow interfaces: vertex-entity
// storage (TessDriver), render passes and framebuffers (PassDriver), shader
// program binding (ShaderDriver), and render state plus draw submission
// (RenderDriver). Driver is the union of all of them.
//
// # Driver Registration
//
// Drivers are registered via init() functions and selected at runtime.
// The headless driver is automatically registered on import:
//
//	import _ "github.com/gogpu/lume/backend/headless"
//
// # Driver Selection
//
// Use Default() to get the best available driver, or Get() to request a
// specific driver by name:
//
//	drv := backend.Default()
//	ctx, err := lume.New(lume.WithDriver(drv))
//
// # Contract Preconditions
//
// The core validates all shape and range invariants before a driver call is
// issued: a TessDesc handed to NewTess has coherent buffer lengths, a
// MapBuffer target matches the storage the tess was built with, and Draw
// windows fit the tess's render counts. Drivers may therefore dispatch
// without re-validating; they only report failures of their own (device
// loss, allocation failure, unsupported feature).
package backend
