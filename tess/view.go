package tess

import "github.com/gogpu/lume/backend"

// View is a non-owning window into a Tess used at draw time: a start
// vertex (index, for an indexed tess), a vertex count and an instance
// count. Views are pure values; constructing one never touches the driver.
//
// A View validates against the Tess's default render vertex count at
// construction only. It is not re-checked afterwards: a view held across
// content mutation may disagree with later application bookkeeping, though
// it can never address past the allocated storage.
type View struct {
	c      *core
	start  int
	vertNb int
	instNb int
}

// TessView returns the view itself, making View satisfy the gate's
// Drawable.
func (v View) TessView() View { return v }

// Start is the first vertex (or index) of the window.
func (v View) Start() int { return v.start }

// VertexCount is the number of vertices (or indices) to draw.
func (v View) VertexCount() int { return v.vertNb }

// InstanceCount is the number of instances to draw; zero means a single
// non-instanced draw.
func (v View) InstanceCount() int { return v.instNb }

// Mode is the primitive mode of the underlying tess.
func (v View) Mode() Mode { return v.c.mode }

// Handle is the driver handle of the underlying tess. It is meant for the
// draw gate, which passes it back to the driver.
func (v View) Handle() backend.TessHandle { return v.c.handle }

// Whole covers the tess's default render counts.
func (t *Tess[V, I, W]) Whole() View {
	return t.core.whole()
}

// TessView makes a Tess drawable directly, as its whole view.
func (t *Tess[V, I, W]) TessView() View {
	return t.core.whole()
}

// InstWhole covers the default vertex count with instNb instances.
func (t *Tess[V, I, W]) InstWhole(instNb int) View {
	v := t.core.whole()
	v.instNb = instNb
	return v
}

// Sub covers the first vertNb vertices.
func (t *Tess[V, I, W]) Sub(vertNb int) (View, error) {
	return t.core.slice(0, vertNb, t.core.renderInstNb)
}

// InstSub covers the first vertNb vertices with instNb instances.
func (t *Tess[V, I, W]) InstSub(vertNb, instNb int) (View, error) {
	return t.core.slice(0, vertNb, instNb)
}

// Slice covers nb vertices starting at start.
func (t *Tess[V, I, W]) Slice(start, nb int) (View, error) {
	return t.core.slice(start, nb, t.core.renderInstNb)
}

// InstSlice covers nb vertices starting at start, with instNb instances.
func (t *Tess[V, I, W]) InstSlice(start, nb, instNb int) (View, error) {
	return t.core.slice(start, nb, instNb)
}

// View builds a view from range sugar.
func (t *Tess[V, I, W]) View(r Range) (View, error) {
	return t.core.view(r, t.core.renderInstNb)
}

// InstView builds a view from range sugar, with instNb instances.
func (t *Tess[V, I, W]) InstView(r Range, instNb int) (View, error) {
	return t.core.view(r, instNb)
}

func (c *core) whole() View {
	return View{c: c, vertNb: c.renderVertNb, instNb: c.renderInstNb}
}

func (c *core) slice(start, nb, instNb int) (View, error) {
	capacity := c.renderVertNb
	if start < 0 || nb < 0 || start > capacity || start+nb > capacity {
		return View{}, &IncorrectViewWindowError{Capacity: capacity, Start: start, Nb: nb}
	}
	return View{c: c, start: start, vertNb: nb, instNb: instNb}, nil
}

func (c *core) view(r Range, instNb int) (View, error) {
	start, nb, whole := r.window(c.renderVertNb)
	if whole {
		v := c.whole()
		v.instNb = instNb
		return v, nil
	}
	return c.slice(start, nb, instNb)
}

// Range is slice-range sugar for view construction. The helpers mirror the
// usual range operators; inclusive ends add one to the window length.
type Range struct {
	from    int
	to      int
	hasFrom bool
	hasTo   bool
	incl    bool
}

// WholeRange is the full range.
func WholeRange() Range { return Range{} }

// RangeTo is the half-open range from the beginning up to end.
func RangeTo(end int) Range { return Range{to: end, hasTo: true} }

// RangeToIncl is the inclusive range from the beginning through end.
func RangeToIncl(end int) Range { return Range{to: end, hasTo: true, incl: true} }

// RangeFrom is the range from start to the default render vertex count.
func RangeFrom(start int) Range { return Range{from: start, hasFrom: true} }

// Span is the half-open range from start up to end.
func Span(start, end int) Range {
	return Range{from: start, to: end, hasFrom: true, hasTo: true}
}

// SpanIncl is the inclusive range from start through end.
func SpanIncl(start, end int) Range {
	return Range{from: start, to: end, hasFrom: true, hasTo: true, incl: true}
}

// window resolves the range against a capacity. whole reports the full
// range, for which the caller uses the default counts unchecked.
func (r Range) window(capacity int) (start, nb int, whole bool) {
	if !r.hasFrom && !r.hasTo {
		return 0, 0, true
	}
	end := capacity
	if r.hasTo {
		end = r.to
		if r.incl {
			end++
		}
	}
	return r.from, end - r.from, false
}
