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

package dem

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dem/grid"
	"seehuhn.de/go/dem/mesh"
)

// Triangle is one rasterization primitive.
type Triangle struct {
	// V indexes TriangleMesh.Vertices and TriangleMesh.Values.
	V [3]int

	// Mean is the average of the three vertex attributes.
	Mean float64
}

// TriangleMesh holds the buffers handed to the rasterizer.  The vertex and
// attribute buffers are the flattened, row-major source grids; only the
// (x, y) part of each position is kept.
type TriangleMesh struct {
	Cols, Rows int // dimensions of the source grid

	Vertices  []vec.Vec2
	Values    []float64
	Triangles []Triangle
}

// Tessellate triangulates points with b and attaches the attribute of
// each source pixel to its vertex.  Both grids must have the same size.
// Triangles with a NaN or infinite corner are dropped.  A triangle index
// outside the point grid gives an error wrapping [ErrInvalidInput].
func Tessellate(points *grid.Grid[r3.Vec], attr *grid.Grid[float64], b mesh.Builder, nodata grid.NoData) (*TriangleMesh, error) {
	if !grid.SameSize(points, attr) {
		return nil, fmt.Errorf("%w: point cloud is %dx%d but attribute is %dx%d",
			ErrInvalidInput, points.Width, points.Height, attr.Width, attr.Height)
	}

	if b == nil {
		return nil, fmt.Errorf("%w: no mesh builder", ErrInvalidInput)
	}
	m, err := b.Build(points, nodata)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %T returned no mesh", ErrInvalidInput, b)
	}

	tm := &TriangleMesh{
		Cols:      points.Width,
		Rows:      points.Height,
		Vertices:  make([]vec.Vec2, len(points.Pix)),
		Values:    make([]float64, len(points.Pix)),
		Triangles: make([]Triangle, 0, len(m.Triangles)),
	}
	for i, p := range points.Pix {
		tm.Vertices[i] = vec.Vec2{X: p.X, Y: p.Y}
		tm.Values[i] = attr.Pix[i]
	}

	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(points.Pix) {
				return nil, fmt.Errorf("%w: triangle %d has vertex index %d, grid has %d points",
					ErrInvalidInput, i, idx, len(points.Pix))
			}
		}

		usable := true
		var sum float64
		for _, idx := range t {
			if !finite(points.Pix[idx]) {
				usable = false
				break
			}
			sum += tm.Values[idx]
		}
		if !usable {
			continue
		}
		tm.Triangles = append(tm.Triangles, Triangle{V: t, Mean: sum / 3})
	}

	Logger().Debug("tessellated",
		"builder", fmt.Sprintf("%T", b),
		"triangles", len(tm.Triangles),
		"dropped", len(m.Triangles)-len(tm.Triangles))
	return tm, nil
}
