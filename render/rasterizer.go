// seehuhn.de/go/dem - elevation rasters from gridded point clouds
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package render implements an orthographic scanline rasterizer for
// triangles carrying one scalar attribute per vertex.
package render

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge represents a triangle side in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Rasterizer fills triangles with a linearly interpolated attribute.
// A pixel is written when its centre lies inside the triangle; there is
// no anti-aliasing, depth test or blending.  Create one instance and reuse
// it for many triangles; the span buffer grows as needed but never shrinks.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM transforms from world space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	span  []float32 // interpolated values for the current scanline
	edges []edge    // non-horizontal sides of the current triangle
}

// NewRasterizer returns a Rasterizer with the given clip rectangle and
// an identity transformation.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:  matrix.Identity,
		Clip: clip,
	}
}

// Reset restores the initial state with the given clip rectangle,
// preserving internal buffer capacity for reuse.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.span = r.span[:0]
	r.edges = r.edges[:0]
}

// Ortho2D sets the CTM to a parallel projection which maps the world
// rectangle [left, right] × [bottom, top] onto the clip rectangle.
// World y = bottom lands on device row Clip.LLy.
func (r *Rasterizer) Ortho2D(left, right, bottom, top float64) {
	sx := (r.Clip.URx - r.Clip.LLx) / (right - left)
	sy := (r.Clip.URy - r.Clip.LLy) / (top - bottom)
	r.CTM = matrix.Matrix{
		sx, 0,
		0, sy,
		r.Clip.LLx - left*sx, r.Clip.LLy - bottom*sy,
	}
}

// toDevice applies the CTM to a world-space point.
func (r *Rasterizer) toDevice(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*p.X + r.CTM[2]*p.Y + r.CTM[4],
		Y: r.CTM[1]*p.X + r.CTM[3]*p.Y + r.CTM[5],
	}
}

// FillTriangle scan-converts the triangle with world-space corners p and
// per-corner attribute values a.  For each device row touched, emit
// receives the first column written and the interpolated values of
// consecutive pixels; the slice is valid only during the call.
//
// The return value is false if the triangle has (numerically) zero area or
// lies entirely outside the clip rectangle.
func (r *Rasterizer) FillTriangle(p [3]vec.Vec2, a [3]float64, emit func(y, xMin int, values []float32)) bool {
	var d [3]vec.Vec2
	for i := range d {
		d[i] = r.toDevice(p[i])
	}

	// Twice the signed area, used to normalise the barycentric weights.
	area := cross(d[0], d[1], d[2])
	if math.Abs(area) < degenerateAreaThreshold || math.IsNaN(area) {
		return false
	}

	r.edges = r.edges[:0]
	for i := range 3 {
		r.addEdge(d[i], d[(i+1)%3])
	}

	yMinF := min(d[0].Y, d[1].Y, d[2].Y)
	yMaxF := max(d[0].Y, d[1].Y, d[2].Y)

	// Rows whose centre lies in [yMinF, yMaxF], clamped to the clip.
	yMin := max(int(math.Ceil(yMinF-0.5-insideTolerance)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(yMaxF-0.5+insideTolerance))+1, int(r.Clip.URy))
	clipXMin := int(r.Clip.LLx)
	clipXMax := int(r.Clip.URx)

	// The weights are affine in the device position; precompute their
	// gradients so each pixel costs only additions.
	inv := 1 / area
	var dwdx, dwdy [3]float64
	for i := range 3 {
		j, k := (i+1)%3, (i+2)%3
		dwdx[i] = (d[j].Y - d[k].Y) * inv
		dwdy[i] = (d[k].X - d[j].X) * inv
	}

	drawn := false
	for y := yMin; y < yMax; y++ {
		yc := float64(y) + 0.5

		xl, xr, ok := r.spanAt(yc)
		if !ok {
			continue
		}
		xStart := max(int(math.Ceil(xl-0.5-insideTolerance)), clipXMin)
		xEnd := min(int(math.Floor(xr-0.5+insideTolerance))+1, clipXMax)
		if xStart >= xEnd {
			continue
		}

		// Barycentric weights at the centre of pixel (xStart, y).
		xc := float64(xStart) + 0.5
		var w [3]float64
		for i := range 3 {
			j := (i + 1) % 3
			k := (i + 2) % 3
			w[i] = cross(d[j], d[k], vec.Vec2{X: xc, Y: yc}) * inv
		}

		n := xEnd - xStart
		r.span = slices.Grow(r.span[:0], n)[:n]
		for i := range n {
			r.span[i] = float32(w[0]*a[0] + w[1]*a[1] + w[2]*a[2])
			w[0] += dwdx[0]
			w[1] += dwdx[1]
			w[2] += dwdx[2]
		}
		emit(y, xStart, r.span)
		drawn = true
	}
	return drawn
}

// addEdge records a triangle side, skipping horizontal ones.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})
}

// spanAt intersects the horizontal line at device height yc with the
// current triangle and returns the covered x interval.
func (r *Rasterizer) spanAt(yc float64) (xl, xr float64, ok bool) {
	xl = math.Inf(1)
	xr = math.Inf(-1)
	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := min(e.y0, e.y1), max(e.y0, e.y1)
		if yc < lo-insideTolerance || yc > hi+insideTolerance {
			continue
		}
		yy := min(max(yc, lo), hi)
		x := e.x0 + e.dxdy*(yy-e.y0)
		xl = min(xl, x)
		xr = max(xr, x)
	}
	return xl, xr, xl <= xr
}

// cross returns (b-a) × (c-a).  For a triangle the value is twice its
// signed area; for a point c it is the edge function of side a→b.
func cross(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Numerical tolerances for the rasterizer.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for a side
	// to take part in span computation.
	horizontalEdgeThreshold = 1e-10

	// degenerateAreaThreshold is the smallest doubled device-space area
	// of a triangle which is still rasterized.
	degenerateAreaThreshold = 1e-12

	// insideTolerance widens each triangle by this many device pixels so
	// that pixel centres on a shared side are written by both neighbours.
	insideTolerance = 1e-9
)
