// Package tess assembles vertex sets into driver-resident tessellations.
//
// A Tess is the gathering of vertices and the way to connect them: a
// primitive Mode, optional index and instance sets, a default number of
// vertices to render and a default number of instances. A Tess is not
// created directly; a Builder (interleaved storage) or DeinterleavedBuilder
// (one buffer per attribute) validates the input data, then asks the driver
// to allocate storage.
//
// # Views
//
// A built Tess is rendered through a View, a cheap (start, vertex count,
// instance count) window validated against the Tess's default render
// vertex count. Views come from the Whole/Sub/Slice family or from the
// Range helpers that mirror slice-range arithmetic.
//
// # Mapping
//
// Tess content can be edited in place by mapping driver storage into host
// slices (Vertices, Indices, Instances, Attribute, InstanceAttribute).
// Mapping never resizes storage; growing content means building a larger
// Tess.
package tess
