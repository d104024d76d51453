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

package render

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// canvas collects emitted spans into a dense buffer.
type canvas struct {
	w, h   int
	pix    []float32
	writes []int
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, pix: make([]float32, w*h), writes: make([]int, w*h)}
	for i := range c.pix {
		c.pix[i] = float32(math.NaN())
	}
	return c
}

func (c *canvas) emit(y, xMin int, values []float32) {
	for i, v := range values {
		c.pix[y*c.w+xMin+i] = v
		c.writes[y*c.w+xMin+i]++
	}
}

func clipFor(w, h int) rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: float64(w), URy: float64(h)}
}

func TestFillTrianglePixelCentres(t *testing.T) {
	// Right triangle with legs along the axes: pixel (x, y) is inside
	// iff x+0.5 + y+0.5 <= 8.
	c := newCanvas(10, 10)
	r := NewRasterizer(clipFor(10, 10))
	p := [3]vec.Vec2{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}}
	if !r.FillTriangle(p, [3]float64{1, 1, 1}, c.emit) {
		t.Fatal("triangle not drawn")
	}
	for y := range 10 {
		for x := range 10 {
			inside := float64(x)+0.5+float64(y)+0.5 <= 8
			got := c.writes[y*10+x] > 0
			if got != inside {
				t.Errorf("pixel (%d, %d): written=%v, want %v", x, y, got, inside)
			}
		}
	}
}

func TestFillTriangleInterpolation(t *testing.T) {
	// A planar attribute must be reproduced exactly at every pixel centre.
	plane := func(x, y float64) float64 { return 2*x - 3*y + 1 }

	tests := []struct {
		name string
		p    [3]vec.Vec2
	}{
		{"ccw", [3]vec.Vec2{{X: 1, Y: 1}, {X: 15, Y: 3}, {X: 6, Y: 14}}},
		{"cw", [3]vec.Vec2{{X: 1, Y: 1}, {X: 6, Y: 14}, {X: 15, Y: 3}}},
		{"flat_top", [3]vec.Vec2{{X: 2, Y: 12}, {X: 14, Y: 12}, {X: 8, Y: 2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCanvas(16, 16)
			r := NewRasterizer(clipFor(16, 16))
			var a [3]float64
			for i, v := range tc.p {
				a[i] = plane(v.X, v.Y)
			}
			r.FillTriangle(tc.p, a, c.emit)

			n := 0
			for y := range 16 {
				for x := range 16 {
					v := c.pix[y*16+x]
					if math.IsNaN(float64(v)) {
						continue
					}
					n++
					want := plane(float64(x)+0.5, float64(y)+0.5)
					if math.Abs(float64(v)-want) > 1e-4 {
						t.Errorf("pixel (%d, %d) = %g, want %g", x, y, v, want)
					}
				}
			}
			if n == 0 {
				t.Error("no pixels written")
			}
		})
	}
}

func TestSharedEdgeLeavesNoGap(t *testing.T) {
	// Two triangles tiling a square must reach every pixel centre inside it.
	c := newCanvas(12, 12)
	r := NewRasterizer(clipFor(12, 12))
	p00 := vec.Vec2{X: 1.3, Y: 1.7}
	p10 := vec.Vec2{X: 10.6, Y: 1.7}
	p01 := vec.Vec2{X: 1.3, Y: 10.2}
	p11 := vec.Vec2{X: 10.6, Y: 10.2}
	r.FillTriangle([3]vec.Vec2{p00, p10, p11}, [3]float64{0, 0, 0}, c.emit)
	r.FillTriangle([3]vec.Vec2{p00, p11, p01}, [3]float64{0, 0, 0}, c.emit)

	for y := range 12 {
		for x := range 12 {
			xc, yc := float64(x)+0.5, float64(y)+0.5
			inside := xc >= p00.X && xc <= p11.X && yc >= p00.Y && yc <= p11.Y
			if inside && c.writes[y*12+x] == 0 {
				t.Errorf("gap at pixel (%d, %d)", x, y)
			}
			if !inside && c.writes[y*12+x] != 0 {
				t.Errorf("pixel (%d, %d) outside the square was written", x, y)
			}
		}
	}
}

func TestFillTriangleClip(t *testing.T) {
	c := newCanvas(8, 8)
	r := NewRasterizer(clipFor(8, 8))
	p := [3]vec.Vec2{{X: -20, Y: -20}, {X: 40, Y: -20}, {X: -20, Y: 40}}
	if !r.FillTriangle(p, [3]float64{5, 5, 5}, c.emit) {
		t.Fatal("clipped triangle not drawn")
	}
	for i, n := range c.writes {
		if n != 1 {
			t.Fatalf("pixel %d written %d times, want 1", i, n)
		}
	}

	outside := [3]vec.Vec2{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 20, Y: 30}}
	if r.FillTriangle(outside, [3]float64{}, c.emit) {
		t.Error("triangle outside the clip reported as drawn")
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	r := NewRasterizer(clipFor(8, 8))
	called := false
	emit := func(int, int, []float32) { called = true }
	collinear := [3]vec.Vec2{{X: 1, Y: 1}, {X: 4, Y: 4}, {X: 7, Y: 7}}
	if r.FillTriangle(collinear, [3]float64{1, 2, 3}, emit) || called {
		t.Error("zero-area triangle was rasterized")
	}
}

func TestOrtho2D(t *testing.T) {
	r := NewRasterizer(clipFor(4, 2))
	r.Ortho2D(10, 12, -1, 0)
	want := matrix.Matrix{2, 0, 0, 2, -20, 2}
	if r.CTM != want {
		t.Fatalf("CTM = %v, want %v", r.CTM, want)
	}
	if got := r.toDevice(vec.Vec2{X: 12, Y: 0}); got != (vec.Vec2{X: 4, Y: 2}) {
		t.Errorf("top right maps to %v", got)
	}
	if got := r.toDevice(vec.Vec2{X: 10, Y: -1}); got != (vec.Vec2{X: 0, Y: 0}) {
		t.Errorf("bottom left maps to %v", got)
	}
}

func TestDrawTriangles(t *testing.T) {
	c := newCanvas(4, 4)
	r := NewRasterizer(clipFor(4, 4))
	verts := []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}}
	vals := []float64{1, 1, 1, 1}

	n, err := r.DrawTriangles(verts, vals, [][3]int{{0, 1, 3}, {0, 3, 2}}, c.emit)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("drew %d triangles, want 2", n)
	}
	for i, v := range c.pix {
		if v != 1 {
			t.Errorf("pixel %d = %g, want 1", i, v)
		}
	}

	if _, err := r.DrawTriangles(verts, vals, [][3]int{{0, 1, 4}}, c.emit); err == nil {
		t.Error("out-of-range index accepted")
	}
	if _, err := r.DrawTriangles(verts, vals[:3], nil, c.emit); err == nil {
		t.Error("short attribute buffer accepted")
	}
}

func TestReset(t *testing.T) {
	r := NewRasterizer(clipFor(4, 4))
	r.Ortho2D(0, 1, 0, 1)
	r.Reset(clipFor(2, 2))
	if r.CTM != matrix.Identity {
		t.Errorf("CTM not reset: %v", r.CTM)
	}
	if r.Clip != clipFor(2, 2) {
		t.Errorf("Clip = %v", r.Clip)
	}
}
