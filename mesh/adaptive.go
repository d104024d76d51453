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

package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

// Adaptive tessellates the grid by recursive subdivision.  A block of the
// grid is represented by the two triangles spanning its corners as soon as
// every grid point inside the block lies within Tolerance (Euclidean
// distance) of that approximation.  Otherwise the block is split into up
// to four sub-blocks, down to single grid cells.
//
// Blocks are refined breadth first.  If MaxTriangles is positive and a
// split would push the triangle count beyond it, the remaining blocks are
// emitted unrefined.  Neighbouring blocks of different size meet in
// T-junctions, which can leave hairline cracks in the mesh.
type Adaptive struct {
	Tolerance    float64
	MaxTriangles int
}

// block is a rectangle of grid points with corners (c0, r0) and (c1, r1).
type block struct {
	c0, r0, c1, r1 int
}

// Build implements [Builder].
func (a Adaptive) Build(points *grid.Grid[r3.Vec], nodata grid.NoData) (*Mesh, error) {
	if err := checkGrid(points); err != nil {
		return nil, err
	}
	if a.Tolerance < 0 || math.IsNaN(a.Tolerance) {
		return nil, fmt.Errorf("mesh: invalid tolerance %g", a.Tolerance)
	}

	m := &Mesh{Width: points.Width, Height: points.Height}
	if points.Width < 2 || points.Height < 2 {
		return m, nil
	}

	queue := []block{{0, 0, points.Width - 1, points.Height - 1}}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if b.c1-b.c0 == 1 && b.r1-b.r0 == 1 {
			m.quad(points, nodata, b.c0, b.r0, b.c1, b.r1)
			continue
		}
		if a.fits(points, nodata, b) {
			m.quad(points, nodata, b.c0, b.r0, b.c1, b.r1)
			continue
		}

		children := b.split()
		if a.MaxTriangles > 0 {
			// Each pending block will cost at most two triangles.
			estimate := len(m.Triangles) + 2*(len(queue)+len(children))
			if estimate > a.MaxTriangles {
				m.quad(points, nodata, b.c0, b.r0, b.c1, b.r1)
				continue
			}
		}
		queue = append(queue, children...)
	}
	return m, nil
}

// fits reports whether the grid points of b are all valid, finite and
// within tolerance of the two triangles spanning the corners of b.
func (a Adaptive) fits(points *grid.Grid[r3.Vec], nodata grid.NoData, b block) bool {
	p00 := points.At(b.c0, b.r0)
	p10 := points.At(b.c1, b.r0)
	p01 := points.At(b.c0, b.r1)
	p11 := points.At(b.c1, b.r1)

	du := float64(b.c1 - b.c0)
	dv := float64(b.r1 - b.r0)
	tol2 := a.Tolerance * a.Tolerance
	for row := b.r0; row <= b.r1; row++ {
		v := float64(row-b.r0) / dv
		for col := b.c0; col <= b.c1; col++ {
			p := points.At(col, row)
			if nodata.IsPoint(p) || !finite(p) {
				return false
			}
			u := float64(col-b.c0) / du

			// Planar interpolation on the triangle containing (u, v).
			var q r3.Vec
			if u >= v {
				q = r3.Add(p00, r3.Add(r3.Scale(u, r3.Sub(p10, p00)), r3.Scale(v, r3.Sub(p11, p10))))
			} else {
				q = r3.Add(p00, r3.Add(r3.Scale(v, r3.Sub(p01, p00)), r3.Scale(u, r3.Sub(p11, p01))))
			}
			if r3.Norm2(r3.Sub(p, q)) > tol2 {
				return false
			}
		}
	}
	return true
}

func finite(p r3.Vec) bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// split divides b along every axis which spans more than one cell.
func (b block) split() []block {
	cols := [][2]int{{b.c0, b.c1}}
	if b.c1-b.c0 > 1 {
		cm := (b.c0 + b.c1) / 2
		cols = [][2]int{{b.c0, cm}, {cm, b.c1}}
	}
	rows := [][2]int{{b.r0, b.r1}}
	if b.r1-b.r0 > 1 {
		rm := (b.r0 + b.r1) / 2
		rows = [][2]int{{b.r0, rm}, {rm, b.r1}}
	}

	out := make([]block, 0, 4)
	for _, r := range rows {
		for _, c := range cols {
			out = append(out, block{c[0], r[0], c[1], r[1]})
		}
	}
	return out
}
