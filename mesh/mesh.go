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

// Package mesh triangulates gridded point clouds.
//
// Triangles connect grid neighbours, so the topology of the mesh is the
// topology of the (col, row) grid.  This is wrong where the projected
// coordinates wrap around, e.g. at a pole or at the prime meridian.  The
// builders do not try to detect or repair this.
package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/dem/grid"
)

// Triangle holds three row-major indices into the source grid.
type Triangle [3]int

// Mesh is a triangulation of a point grid.
type Mesh struct {
	// Width and Height are the dimensions of the source grid.
	Width, Height int

	// Triangles index the source grid, Pix[row*Width+col].
	Triangles []Triangle
}

// Builder turns a point grid into a mesh.  Points for which nodata.IsPoint
// reports true are never used as triangle corners.
type Builder interface {
	Build(points *grid.Grid[r3.Vec], nodata grid.NoData) (*Mesh, error)
}

// quad appends the triangles covering the grid rectangle with corners
// (c0, r0) and (c1, r1).  The rectangle is split along its (c0, r0)-(c1, r1)
// diagonal.  If exactly one corner is missing, the triangle formed by the
// other three is kept; with more missing corners nothing is emitted.
func (m *Mesh) quad(points *grid.Grid[r3.Vec], nodata grid.NoData, c0, r0, c1, r1 int) {
	p00 := points.Index(c0, r0)
	p10 := points.Index(c1, r0)
	p01 := points.Index(c0, r1)
	p11 := points.Index(c1, r1)

	ok00 := !nodata.IsPoint(points.Pix[p00])
	ok10 := !nodata.IsPoint(points.Pix[p10])
	ok01 := !nodata.IsPoint(points.Pix[p01])
	ok11 := !nodata.IsPoint(points.Pix[p11])

	switch {
	case ok00 && ok10 && ok01 && ok11:
		m.Triangles = append(m.Triangles,
			Triangle{p00, p10, p11},
			Triangle{p00, p11, p01})
	case !ok00 && ok10 && ok01 && ok11:
		m.Triangles = append(m.Triangles, Triangle{p10, p11, p01})
	case ok00 && !ok10 && ok01 && ok11:
		m.Triangles = append(m.Triangles, Triangle{p00, p11, p01})
	case ok00 && ok10 && !ok01 && ok11:
		m.Triangles = append(m.Triangles, Triangle{p00, p10, p11})
	case ok00 && ok10 && ok01 && !ok11:
		m.Triangles = append(m.Triangles, Triangle{p00, p10, p01})
	}
}

// Compact returns the vertices referenced by the mesh, in order of first
// use, together with the triangles re-indexed into that list and the
// source grid index of every vertex.
func (m *Mesh) Compact(points *grid.Grid[r3.Vec]) (vertices []r3.Vec, tris []Triangle, source []int) {
	remap := make(map[int]int)
	tris = make([]Triangle, len(m.Triangles))
	for t, tri := range m.Triangles {
		for k, idx := range tri {
			j, seen := remap[idx]
			if !seen {
				j = len(vertices)
				remap[idx] = j
				vertices = append(vertices, points.Pix[idx])
				source = append(source, idx)
			}
			tris[t][k] = j
		}
	}
	return vertices, tris, source
}

// checkGrid rejects grids which cannot hold a single quad.
func checkGrid(points *grid.Grid[r3.Vec]) error {
	if points == nil {
		return fmt.Errorf("mesh: nil point grid")
	}
	if len(points.Pix) != points.Width*points.Height {
		return fmt.Errorf("mesh: grid has %d cells, expected %dx%d",
			len(points.Pix), points.Width, points.Height)
	}
	return nil
}
